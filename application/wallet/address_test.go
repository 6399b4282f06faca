package wallet

import (
	"testing"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func TestEncodeDecodeAddress(t *testing.T) {
	pub, err := SpendPublicKey(DummyMnemonic)
	require.NoError(t, err)
	hash := blake3.Sum256(pub)

	for _, network := range []entities.NetworkType{entities.Mainnet, entities.Testnet, entities.Stagenet} {
		t.Run(network.String(), func(t *testing.T) {
			addr, err := EncodeAddress(network, pub)
			require.NoError(t, err)

			gotNetwork, keyHash, err := DecodeAddress(addr)
			require.NoError(t, err)
			assert.Equal(t, network, gotNetwork)
			assert.Equal(t, hash[:KeyHashSize], keyHash)
		})
	}
}

func TestEncodeAddress_NetworksDiffer(t *testing.T) {
	pub, err := SpendPublicKey(DummyMnemonic)
	require.NoError(t, err)

	main, err := EncodeAddress(entities.Mainnet, pub)
	require.NoError(t, err)
	test, err := EncodeAddress(entities.Testnet, pub)
	require.NoError(t, err)
	assert.NotEqual(t, main, test)
}

func TestEncodeAddress_UnknownNetwork(t *testing.T) {
	_, err := EncodeAddress(entities.NetworkType(7), []byte{1})
	assert.Error(t, err)
}

func TestDecodeAddress_Errors(t *testing.T) {
	pub, err := SpendPublicKey(DummyMnemonic)
	require.NoError(t, err)
	addr, err := EncodeAddress(entities.Mainnet, pub)
	require.NoError(t, err)

	raw, err := base58.Decode(addr)
	require.NoError(t, err)

	corrupted := append([]byte(nil), raw...)
	corrupted[5] ^= 0xff

	unknownPrefix := append([]byte(nil), raw...)
	unknownPrefix[0] = 0x7f

	tests := []struct {
		name    string
		address string
		message string
	}{
		{"not base58", "0OIl", "decode address"},
		{"too short", base58.Encode(raw[:10]), "address length"},
		{"checksum", base58.Encode(corrupted), "checksum mismatch"},
		{"prefix", base58.Encode(unknownPrefix), "unknown address prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeAddress(tt.address)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

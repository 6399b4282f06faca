package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMnemonic(t *testing.T) {
	mnemonic, err := GenerateMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 24)
	assert.True(t, ValidateMnemonic(mnemonic))
}

func TestGenerateMnemonic_Unique(t *testing.T) {
	m1, err := GenerateMnemonic()
	require.NoError(t, err)
	m2, err := GenerateMnemonic()
	require.NoError(t, err)
	assert.NotEqual(t, m1, m2)
}

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		valid    bool
	}{
		{"dummy phrase", DummyMnemonic, true},
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", false},
		{"unknown word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon moneroo", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateMnemonic(tt.mnemonic))
		})
	}
}

func TestSpendPublicKey_Deterministic(t *testing.T) {
	k1, err := SpendPublicKey(DummyMnemonic)
	require.NoError(t, err)
	k2, err := SpendPublicKey(DummyMnemonic)
	require.NoError(t, err)

	assert.Len(t, k1, 33)
	assert.Contains(t, []byte{0x02, 0x03}, k1[0], "compressed key prefix")
	assert.Equal(t, k1, k2)
}

func TestSpendPublicKey_DistinctMnemonics(t *testing.T) {
	other, err := GenerateMnemonic()
	require.NoError(t, err)

	k1, err := SpendPublicKey(DummyMnemonic)
	require.NoError(t, err)
	k2, err := SpendPublicKey(other)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestSpendPublicKey_InvalidMnemonic(t *testing.T) {
	_, err := SpendPublicKey("not a mnemonic")
	assert.Error(t, err)
}

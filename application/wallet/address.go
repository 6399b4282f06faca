package wallet

import (
	"bytes"
	"fmt"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"
)

// Address layout: network byte, key hash, checksum.
const (
	KeyHashSize  = 20
	ChecksumSize = 4
	addressSize  = 1 + KeyHashSize + ChecksumSize
)

// EncodeAddress renders the primary address of pubKey on network.
// Address = base58(prefix || BLAKE3(pubKey)[:20] || BLAKE3(prefix || hash)[:4]).
func EncodeAddress(network entities.NetworkType, pubKey []byte) (string, error) {
	if !network.Valid() {
		return "", fmt.Errorf("unknown network %s", network)
	}
	h := blake3.Sum256(pubKey)

	payload := make([]byte, 0, addressSize)
	payload = append(payload, network.AddressPrefix())
	payload = append(payload, h[:KeyHashSize]...)
	sum := blake3.Sum256(payload)
	payload = append(payload, sum[:ChecksumSize]...)

	return base58.Encode(payload), nil
}

// DecodeAddress parses an address produced by EncodeAddress and returns its
// network and key hash.
func DecodeAddress(s string) (entities.NetworkType, []byte, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return 0, nil, fmt.Errorf("decode address: %w", err)
	}
	if len(raw) != addressSize {
		return 0, nil, fmt.Errorf("address length %d, want %d", len(raw), addressSize)
	}

	network, ok := entities.NetworkFromPrefix(raw[0])
	if !ok {
		return 0, nil, fmt.Errorf("unknown address prefix %d", raw[0])
	}

	body, checksum := raw[:1+KeyHashSize], raw[1+KeyHashSize:]
	sum := blake3.Sum256(body)
	if !bytes.Equal(sum[:ChecksumSize], checksum) {
		return 0, nil, fmt.Errorf("address checksum mismatch")
	}
	return network, body[1:], nil
}

package entities

import "time"

// Wallet is the in-memory state behind a wallet Handle.
type Wallet struct {
	CreatedAt      time.Time   `json:"created_at"`
	ID             string      `json:"id"`
	Mnemonic       string      `json:"-"`
	PrimaryAddress string      `json:"primary_address"`
	SpendPublicKey []byte      `json:"spend_public_key"`
	Network        NetworkType `json:"network"`
}

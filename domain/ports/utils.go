package ports

import "context"

// UtilsService is the native utilities module.
type UtilsService interface {
	// UtilsDummyMethod is a stub retained to test the binding surface.
	UtilsDummyMethod(ctx context.Context) (int32, error)

	// ValidateMnemonic reports whether s is a well-formed seed phrase.
	ValidateMnemonic(ctx context.Context, s string) (bool, error)

	// ValidateAddress reports whether s is a well-formed address for any network.
	ValidateAddress(ctx context.Context, s string) (bool, error)
}

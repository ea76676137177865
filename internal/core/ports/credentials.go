package ports

// CredentialVerifier isolates how passwords are stored and compared so the
// scheme can be swapped without touching call sites. Verify returns
// domain.ErrInvalidCredentials when the presented secret does not match the
// stored one.
type CredentialVerifier interface {
	// Hash converts a plaintext secret into its stored form.
	Hash(plain string) (string, error)
	// Verify compares a stored secret against a presented plaintext one.
	Verify(stored, presented string) error
}

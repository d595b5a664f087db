package model

// GenerateRequest describes one invocation of the generator.
// A non-empty Charset replaces the default alphabet and Specials is then ignored.
type GenerateRequest struct {
	Length   int
	Count    int
	Charset  string
	Specials bool
	Hash     bool
}

// GenerateResponse carries one generated password and, when requested, its
// Argon2id PHC hash.
type GenerateResponse struct {
	Password string
	Hash     string
}

package facades

// Profile is the provider account information needed to resolve a local
// user after an OAuth callback. Email may be empty when the provider
// withholds it; callers decide whether that is fatal.
type Profile struct {
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}

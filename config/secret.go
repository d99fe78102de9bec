package config

// ResolverSecretData is the JSON shape of the resolver secret in AWS Secrets Manager
type ResolverSecretData struct {
	ApiToken string `json:"apiToken"`
}

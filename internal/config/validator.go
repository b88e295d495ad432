package config

import "fmt"

// Placeholder values shipped in .env.example
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)

// Warnings reports settings that are legal but unsafe or surprising outside
// development. Load has already rejected invalid combinations.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD is the example value - use a secure password")
	}
	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY is the example value - generate one with: openssl rand -hex 32")
	}
	if c.Issuer == IssuerEthereum && c.EthChainID == 0 {
		warnings = append(warnings, "ETH_CHAIN_ID is not set - the chain ID will be read from the RPC endpoint")
	}

	if c.IsDevelopment() {
		return warnings
	}
	if c.PhotoStore == PhotoStoreMemory {
		warnings = append(warnings, fmt.Sprintf("PHOTO_STORE=%s keeps photos in process memory in %s", PhotoStoreMemory, c.Environment))
	}
	if c.Issuer == IssuerSimulated {
		warnings = append(warnings, fmt.Sprintf("ISSUER=%s does not transfer real tokens in %s", IssuerSimulated, c.Environment))
	}
	if c.VerificationFailurePolicy == VerificationPolicyDegrade {
		warnings = append(warnings, "VERIFICATION_FAILURE_POLICY=degrade scores failed photo checks as zero instead of rejecting them")
	}
	return warnings
}

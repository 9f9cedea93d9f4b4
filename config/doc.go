// Package config loads governor configuration from a TOML file, a .env
// file, and process environment variables.
//
// Precedence, lowest to highest: built-in defaults, the TOML file, the
// environment. A .env file in the working directory is loaded into the
// environment first (it never overrides variables already set), matching
// how the review workflow runs locally versus inside CI.
//
//	cfg, err := config.Load("llmgate.toml")
//	if err != nil {
//	    return err
//	}
//	ratelimit.Configure(cfg.RequestsPerMinute, cfg.BurstCapacity)
//	calc := tokens.NewCalculatorWithProfiles(cfg.TokenProfiles())
//
// Recognized environment variables: REQUESTS_PER_MINUTE, BURST_CAPACITY,
// and per-analysis-type overrides of the form {TYPE}_BASE_TOKENS and
// {TYPE}_MAX_TOKENS, e.g. HEAVY_ANALYSIS_MAX_TOKENS=8000.
//
// Watch re-applies the file on change, for deployments that tune the rate
// limit between review runs without restarting the process.
package config

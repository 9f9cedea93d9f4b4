// Package providers registers all known model transports.
// Import this package to make every transport available via provider.New():
//
//	import _ "github.com/rfallows/llmgate/providers"
package providers

import (
	_ "github.com/rfallows/llmgate/provider/bedrock"
)

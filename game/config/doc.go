// Package config provides the board catalog for the Snakes and Ladders server.
//
// The config package handles:
//   - Loading difficulty tiers from YAML files
//   - Tier and board validation
//   - Built-in Easy, Medium and Hard tiers embedded in the binary
//   - Saving custom tiers to a catalog directory
//
// Tier Format:
//
// Each tier is one YAML file. The file name (without extension) is the tier id
// used when starting a session; lookups ignore case.
//
//	name: Easy
//	description: Fewer snakes and plenty of long ladders.
//	boards:
//	  - name: Easy 1
//	    snakes: {35: 8, 52: 29, 78: 41, 94: 72}
//	    ladders: {3: 21, 7: 31, 19: 38, 28: 55}
//
// Snakes map a head to a lower tail and ladders map a foot to a higher top.
// No square may start two jumps, and no jump may end where another starts.
//
// Usage:
//
//	manager, err := config.NewDefaultManager()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	tier, err := manager.LoadTier("medium")
//
//	// Directory-backed catalogs also accept new tiers
//	manager, err = config.NewManager("tiers")
//	err = manager.SaveTier("custom", tier)
//
// ValidateFS checks every file of a catalog and is used by the validate command.
package config

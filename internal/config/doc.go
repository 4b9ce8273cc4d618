// Package config holds the F-core (fabric-model) static parameter
// dictionaries, ported from original_source/include.py's flat module of
// dict literals (global_params, fabric_params, initiators_params,
// targets_params) into typed Go structs, plus the Validate() methods that
// replace the original's silent malformed-input behavior (an unrecognized
// START_AT value, for instance, reached Auxiliary.error and exited the
// whole process) with an ordinary returned *kernel.ConfigError.
package config

// Package config provides configuration loading for the customer exporter.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CUSTEXPORT_<SECTION>_<FIELD>:
//
//	CUSTEXPORT_EXPORT_BATCH_SIZE=15000
//	CUSTEXPORT_EXPORT_DEDUPLICATE=true
//	CUSTEXPORT_LOGGING_LEVEL=debug
//	CUSTEXPORT_TELEMETRY_METRIC_EXPORTER=prometheus
//	CUSTEXPORT_PATHS_OUTPUT_DIR=/var/exports
//
// # Configuration File
//
//	export:
//	  batch_size: 15000
//	  deduplicate: true
//	  debug_batch_size: 20
//	logging:
//	  level: info
//	  output: both
//	paths:
//	  output_dir: output
//
// Values are validated with go-playground/validator struct tags after all
// sources are merged.
package config

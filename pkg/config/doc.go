// Package config loads client and sandbox settings with viper.
//
// Values are resolved in this order, highest first: bound command-line
// flags, MIROPAY_* environment variables, the optional YAML config file, and
// the defaults below.
//
//	key               env                        default
//	base_url          MIROPAY_BASE_URL           https://api.pallawan.com/v1
//	x_id              MIROPAY_X_ID
//	private_key       MIROPAY_PRIVATE_KEY
//	private_key_file  MIROPAY_PRIVATE_KEY_FILE
//	mode              MIROPAY_MODE               live
//	timeout           MIROPAY_TIMEOUT            30s
//	log.level         MIROPAY_LOG_LEVEL          info
//	log.format        MIROPAY_LOG_FORMAT         console
//	sandbox.addr      MIROPAY_SANDBOX_ADDR       127.0.0.1:8080
//
// MIROPAY_PRIVATE_KEY may hold the PEM on a single line with literal "\n"
// separators.
package config

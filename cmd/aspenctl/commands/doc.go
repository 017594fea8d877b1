// Package commands defines the aspenctl CLI.
//
// Commands
//
//   - signin            Sign in and print the session token
//   - activation-code   Ask for an SMS activation code
//   - pin set           Set the transactional PIN
//   - pin update        Replace the transactional PIN
//   - token             Ask for a single-use token
//   - version           Print build information
//
// Configuration is read from aspenctl.yml (or config.yml) and ASPEN_*
// environment variables, e.g. ASPEN_ASPEN_APP_KEY. User commands either
// reuse aspen.token from the configuration or sign in first with
// --doc-type, --doc-number and --password.
package commands

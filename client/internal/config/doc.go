// Package config loads the resourcectl client configuration from the
// `client:` section of config.yaml (the `server:` key is ignored).
//
// Top-level types:
//   - Config{Client}: config tree parsed from YAML
//   - ClientConfig: server_endpoint, timeout, retries, server_auth
//   - AuthConfig: mode (mtls|apikey|none), cert/key/ca files, header,
//     key_env; Key() resolves the API key from the environment
//
// Load(path) applies defaults (localhost:50051, 10s timeout, 3 retries),
// reads the file when path is non-empty, applies RESOURCECTL_* environment
// overrides (RESOURCECTL_SERVER_ENDPOINT, RESOURCECTL_AUTH_MODE, ...), then
// validates. Callers that change fields afterwards (command-line flags)
// should call Validate again.
package config

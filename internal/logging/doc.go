// Package logger provides leveled, colored logging for oidcrypt commands.
//
// Verbosity is controlled by two persistent flags on the root command:
//
//   - --verbose: shows info messages
//   - --debug: shows info and debug messages
//
// Warnings and errors are always written to stderr. Debug output never
// contains passwords, plaintext account configurations or private keys;
// callers log names, formats and sizes only.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Decoding account %s", name)
//	if err != nil {
//	    return log.ErrorfAndReturn("failed to decode account %s: %w", name, err)
//	}
package logger

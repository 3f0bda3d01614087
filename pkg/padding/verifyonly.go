//go:build verifyonly

package padding

// SigningEnabled reports whether this build includes the Encode methods.
const SigningEnabled = false

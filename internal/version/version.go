package version

const Value = "1.0.0"

// String is the version line shown by --version.
func String() string {
	return "cyberchecklist " + Value
}

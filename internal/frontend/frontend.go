// Package frontend holds the on-disk layout shared by the build hook and the
// server. The hook writes DistDir and the server reads it, so both sides must
// take the path from here.
package frontend

const (
	// Dir is the frontend project directory, relative to the repository root.
	Dir = "client"
	// DistDir is where the frontend build writes its static output,
	// relative to the repository root.
	DistDir = "dist"
	// BuildScript is the package.json script that produces DistDir.
	BuildScript = "build"
)

// Triggers lists the paths whose changes require the build hook to run again.
func Triggers() []string {
	return []string{
		Dir + "/src/",
		Dir + "/static/",
	}
}

package assets

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

//go:embed shaders
var embedded embed.FS

// ShaderDir, when set, is searched before the embedded shaders so GLSL can
// be edited without rebuilding.
var ShaderDir = ""

// LoadShader reads a GLSL file into a null-terminated string for OpenGL.
func LoadShader(name string) (string, error) {
	var (
		b   []byte
		err error
	)
	if ShaderDir != "" {
		b, err = os.ReadFile(filepath.Join(ShaderDir, name))
	}
	if ShaderDir == "" || err != nil {
		b, err = embedded.ReadFile(path.Join("shaders", name))
	}
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Str
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

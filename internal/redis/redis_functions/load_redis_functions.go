package redis_functions

import (
	"context"
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:embed *.lua
var fs embed.FS

// Library is the name every embedded script registers under.
const Library = "rentauction"

// LoadAll loads or replaces every embedded Lua library and returns the
// library names Redis reported back.
func LoadAll(ctx context.Context, rdb redis.Cmdable) ([]string, error) {
	files, err := fs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("read embed dir: %w", err)
	}
	var loaded []string
	for _, f := range files {
		if f.IsDir() || path.Ext(f.Name()) != ".lua" {
			continue
		}

		code, err := fs.ReadFile(f.Name())
		if err != nil {
			return nil, err
		}
		want, err := libraryName(string(code))
		if err != nil {
			return nil, fmt.Errorf("lua %s: %w", f.Name(), err)
		}
		got, err := rdb.FunctionLoadReplace(ctx, string(code)).Result()
		if err != nil {
			return nil, fmt.Errorf("load lua %s: %w", f.Name(), err)
		}
		if got != want {
			return nil, fmt.Errorf("load lua %s: redis registered %q, header says %q", f.Name(), got, want)
		}
		zap.L().Info("lua_library_loaded", zap.String("file", f.Name()), zap.String("library", got))
		loaded = append(loaded, got)
	}
	return loaded, nil
}

// libraryName reads the name from a "#!lua name=<lib>" shebang.
func libraryName(code string) (string, error) {
	first, _, _ := strings.Cut(code, "\n")
	const prefix = "#!lua name="
	if !strings.HasPrefix(first, prefix) {
		return "", fmt.Errorf("missing %q header", prefix)
	}
	name := strings.TrimSpace(strings.TrimPrefix(first, prefix))
	if name == "" {
		return "", fmt.Errorf("empty library name")
	}
	return name, nil
}

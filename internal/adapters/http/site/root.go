// Package site serves the practice frontend.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/puimuri/trainer/pkg/logger"
)

// ErrServe reports a frontend that cannot be served.
var ErrServe = errors.New("frontend serve failed")

// Register attaches the frontend at / on mux. When frontendDir names an
// existing directory its files are served; otherwise the embedded practice
// page is used.
func Register(ctx context.Context, mux *http.ServeMux, frontendDir string) {
	if mux == nil {
		panic("mux is nil")
	}
	log := logger.Named("site")
	fsys, fromDisk := FS(frontendDir)
	switch {
	case fromDisk:
		log.Info(ctx, "serving frontend from disk", logger.String("dir", frontendDir))
	case frontendDir != "":
		log.Warn(ctx, "frontend directory unusable, serving embedded page",
			logger.Error(fmt.Errorf("%w: %s is not a directory", ErrServe, frontendDir)),
		)
	default:
		log.Info(ctx, "serving embedded frontend")
	}
	mux.Handle("/", http.FileServer(fsys))
}

// FS returns the frontend file system and whether it comes from
// frontendDir on disk.
func FS(frontendDir string) (http.FileSystem, bool) {
	if frontendDir != "" {
		if info, err := os.Stat(frontendDir); err == nil && info.IsDir() {
			return http.Dir(frontendDir), true
		}
	}
	return EmbeddedFS(), false
}

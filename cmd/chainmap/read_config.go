package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/graph-guard/chainmap/pkg/config"
)

// ReadConfig returns the default configuration if path is empty.
// Returns nil if the configuration can't be read.
func ReadConfig(w io.Writer, path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	basePath, fileName := basePathAndFileName(path)
	conf, err := config.Read(os.DirFS(basePath), fileName)
	if err != nil {
		fmt.Fprintf(w, "reading config: %s\n", err)
		return nil
	}
	return conf
}

func basePathAndFileName(path string) (basePath, fileName string) {
	basePath, fileName = filepath.Split(path)
	if basePath == "" {
		basePath = "."
	}
	return basePath, fileName
}

// Command rook64 runs the engine as a UCI process communicating over
// stdin/stdout.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/MatN23/rook64/book"
	"github.com/MatN23/rook64/config"
	"github.com/MatN23/rook64/uci"
)

var (
	configPath = flag.String("config", "rook64.toml", "path to an optional TOML defaults file")
	bookPath   = flag.String("book", "", "path to a YAML opening book file, overrides the config file's book_path")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Warningf("main: %v, falling back to built-in defaults", err)
	}
	opts := cfg.Options()

	path := *bookPath
	if path == "" {
		path = cfg.BookPath
	}

	var b *book.Book
	if opts.OwnBook && path != "" {
		loaded, err := book.Load(path)
		if err != nil {
			glog.Warningf("main: failed to load opening book %q: %v", path, err)
			b = book.Empty()
		} else {
			b = loaded
		}
	} else {
		b = book.Empty()
	}

	glog.Infof("main: starting with hash=%dMB threads=%d ownBook=%v", opts.HashMB, opts.Threads, opts.OwnBook)

	handler := uci.New(os.Stdout, opts, b)
	handler.Run(os.Stdin)
}

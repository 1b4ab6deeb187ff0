// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/devblok/capview/utility/kar"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/mmap"
)

func init() {
	currentUserName = "unknown"
	if u, err := user.Current(); err == nil {
		currentUserName = u.Username
	}
}

var (
	currentUserName string
	author          = flag.String("author", "", "Set the author of the package when compressing")
	version         = flag.Int64("version", 1, "Archive version number to create it with")
	list            = flag.Bool("l", false, "List the files of the archive")
	extract         = flag.String("e", "", "Extract the file given to stdout")
	compress        = flag.String("c", "", "Compress the given file/folder")
	archiveFile     = flag.String("f", "out.kar", "Archive file")
	silent          = flag.Bool("s", false, "Silent")
)

func main() {
	flag.Parse()
	if *silent {
		log.SetLevel(log.ErrorLevel)
	}

	ops := 0
	for _, set := range []bool{*list, *extract != "", *compress != ""} {
		if set {
			ops++
		}
	}
	if ops > 1 {
		log.Fatal("Only one operation at a time")
	}

	var err error
	switch {
	case *list:
		err = listFiles(os.Stdout)
	case *extract != "":
		err = extractFile(os.Stdout, *extract)
	case *compress != "":
		err = compressFiles()
	default:
		flag.PrintDefaults()
	}
	if err != nil {
		log.WithError(err).Fatal("Operation failed")
	}
}

func openArchive() (*kar.Archive, io.Closer, error) {
	r, err := mmap.Open(*archiveFile)
	if err != nil {
		return nil, nil, err
	}
	ar, err := kar.Open(r)
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return ar, r, nil
}

func listFiles(w io.Writer) error {
	ar, closer, err := openArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	header := ar.Header()
	log.WithFields(log.Fields{
		"author":  header.Author,
		"version": header.Version,
		"created": time.Unix(header.DateCreated, 0).Format(time.RFC3339),
	}).Info("Archive opened")

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tCOMPRESSED")
	for _, e := range ar.Entries() {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", e.Name, e.Size, e.CompressedSize)
	}
	return tw.Flush()
}

func extractFile(w io.Writer, name string) error {
	ar, closer, err := openArchive()
	if err != nil {
		return err
	}
	defer closer.Close()

	r, err := ar.Open(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	return err
}

func compressFiles() error {
	if _, err := os.Stat(*archiveFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	var filesToCompress []string
	if err := filepath.Walk(*compress, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		filesToCompress = append(filesToCompress, path)
		return nil
	}); err != nil {
		return err
	}

	name := *author
	if name == "" {
		name = currentUserName
	}
	karBuilder := kar.NewBuilder(kar.Header{
		Author:      name,
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})

	for _, ftc := range filesToCompress {
		f, err := os.Open(ftc)
		if err != nil {
			return err
		}
		err = karBuilder.Add(filepath.ToSlash(ftc), f)
		f.Close()
		if err != nil {
			return err
		}
		log.WithField("file", ftc).Debug("Compressed")
	}

	dst, err := os.Create(*archiveFile)
	if err != nil {
		return err
	}
	written, err := karBuilder.WriteTo(dst)
	if err != nil {
		dst.Close()
		return err
	}
	log.WithFields(log.Fields{
		"files":   len(filesToCompress),
		"written": written,
	}).Info("Archive created")
	return dst.Close()
}

// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar_test

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/devblok/capview/utility/kar"
	qt "github.com/frankban/quicktest"
	"golang.org/x/exp/mmap"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = strings.Repeat("idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb", 64)
)

func build(c *qt.C) []byte {
	builder := kar.NewBuilder(kar.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	c.Assert(builder.Add("test/test1.txt", strings.NewReader(testString1)), qt.IsNil)
	c.Assert(builder.Add("test/test2.txt", strings.NewReader(testString2)), qt.IsNil)
	c.Assert(builder.Len(), qt.Equals, 2)

	buf := bytes.NewBuffer([]byte{})
	written, err := builder.WriteTo(buf)
	c.Assert(err, qt.IsNil)
	c.Assert(written, qt.Equals, int64(buf.Len()))
	c.Assert(builder.Len(), qt.Equals, 0)
	return buf.Bytes()
}

func TestCreateAndRead(t *testing.T) {
	c := qt.New(t)
	ar, err := kar.Open(bytes.NewReader(build(c)))
	c.Assert(err, qt.IsNil)

	f, err := ar.Open("test/test1.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(f.Entry().Size, qt.Equals, int64(len(testString1)))

	result, err := ioutil.ReadAll(f)
	c.Assert(err, qt.IsNil)
	c.Assert(string(result), qt.Equals, testString1)
}

func TestCreateAndReadAll(t *testing.T) {
	c := qt.New(t)
	ar, err := kar.Open(bytes.NewReader(build(c)))
	c.Assert(err, qt.IsNil)

	header := ar.Header()
	c.Assert(header.Author, qt.Equals, "devblok")
	c.Assert(header.Version, qt.Equals, int64(1))

	entries := ar.Entries()
	c.Assert(len(entries), qt.Equals, 2)
	c.Assert(entries[0].Name, qt.Equals, "test/test1.txt")
	c.Assert(entries[1].Name, qt.Equals, "test/test2.txt")
	c.Assert(entries[1].Offset, qt.Equals, entries[0].CompressedSize)

	for name, expected := range map[string]string{
		"test/test1.txt": testString1,
		"test/test2.txt": testString2,
	} {
		data, err := ar.ReadAll(name)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Equals, expected)
	}
}

func TestOpenmmap(t *testing.T) {
	c := qt.New(t)
	dir, err := ioutil.TempDir("", "kar")
	c.Assert(err, qt.IsNil)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "opentest.kar")
	c.Assert(ioutil.WriteFile(path, build(c), 0644), qt.IsNil)

	r, err := mmap.Open(path)
	c.Assert(err, qt.IsNil)
	defer r.Close()

	ar, err := kar.Open(r)
	c.Assert(err, qt.IsNil)

	data, err := ar.ReadAll("test/test2.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, testString2)
}

func TestNotFound(t *testing.T) {
	c := qt.New(t)
	ar, err := kar.Open(bytes.NewReader(build(c)))
	c.Assert(err, qt.IsNil)

	_, err = ar.Open("test/missing.txt")
	c.Assert(err, qt.Equals, kar.ErrNotFound)
}

func TestFileFormat(t *testing.T) {
	c := qt.New(t)
	valid := build(c)

	truncatedHeader := append([]byte{}, valid[:kar.MagicLength+kar.HeaderSizeNumberLength+4]...)
	hugeHeader := append([]byte{}, valid...)
	hugeHeader[kar.MagicLength+7] = 0x7f

	for name, data := range map[string][]byte{
		"empty":            {},
		"short":            []byte("KA"),
		"bad magic":        append([]byte("TAR\x00"), valid[kar.MagicLength:]...),
		"no header size":   valid[:kar.MagicLength+3],
		"truncated header": truncatedHeader,
		"huge header":      hugeHeader,
	} {
		c.Run(name, func(c *qt.C) {
			_, err := kar.Open(bytes.NewReader(data))
			c.Assert(err, qt.Equals, kar.ErrFileFormat)
		})
	}
}

func TestConcurrentAdd(t *testing.T) {
	c := qt.New(t)
	builder := kar.NewBuilder(kar.Header{Author: "devblok"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			builder.Add(fmt.Sprintf("file%d", i), strings.NewReader(strings.Repeat("x", i+1)))
		}(i)
	}
	wg.Wait()

	buf := bytes.NewBuffer([]byte{})
	_, err := builder.WriteTo(buf)
	c.Assert(err, qt.IsNil)

	ar, err := kar.Open(bytes.NewReader(buf.Bytes()))
	c.Assert(err, qt.IsNil)
	c.Assert(len(ar.Entries()), qt.Equals, 16)
	for i := 0; i < 16; i++ {
		data, err := ar.ReadAll(fmt.Sprintf("file%d", i))
		c.Assert(err, qt.IsNil)
		c.Assert(len(data), qt.Equals, i+1)
	}
}

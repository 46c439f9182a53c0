// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// CheckpointPath returns the path of the checkpoint file of a component; e.g. "solid" or "fluid"
func CheckpointPath(dir, fnkey, name, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_%s_chk.%s", fnkey, name, enctype))
}

// SaveCheckpoint encodes items, in order, into the checkpoint file of a component
func SaveCheckpoint(dir, fnkey, name, enctype string, verbose bool, items ...interface{}) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)

	// encode items
	for i, item := range items {
		err = enc.Encode(item)
		if err != nil {
			return chk.Err("cannot encode item %d of %s checkpoint:\n%v", i, name, err)
		}
	}

	// save file
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return chk.Err("cannot create directory %q:\n%v", dir, err)
	}
	return save_file(CheckpointPath(dir, fnkey, name, enctype), &buf, verbose)
}

// LoadCheckpoint decodes items, in order, from the checkpoint file of a component
//  Output:
//   found -- false if the file does not exist; err is nil in this case
func LoadCheckpoint(dir, fnkey, name, enctype string, items ...interface{}) (found bool, err error) {

	// open file
	fn := CheckpointPath(dir, fnkey, name, enctype)
	fil, err := os.Open(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()

	// decode items
	dec := GetDecoder(fil, enctype)
	for i, item := range items {
		err = dec.Decode(item)
		if err != nil {
			return true, chk.Err("cannot decode item %d of %s checkpoint %q:\n%v", i, name, fn, err)
		}
	}
	return true, nil
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}

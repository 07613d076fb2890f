package flagvalue

import (
	"flag"
	"io"
	"os"

	"braces.dev/errtrace"
)

// FileSwitch is a flag that may be passed bare, as "-debug",
// or with a file name, as "-debug=codemark.log".
//
// Bare use directs output to a fallback writer;
// a file name directs it to that file.
type FileSwitch string

var _ flag.Getter = (*FileSwitch)(nil)

// Get returns the file name, "-" for bare use,
// or an empty string if the flag was not passed.
func (fs *FileSwitch) Get() any { return string(*fs) }

// String returns the same value as Get.
func (fs *FileSwitch) String() string { return string(*fs) }

// IsBoolFlag allows the flag to be passed without a value.
func (*FileSwitch) IsBoolFlag() bool { return true }

// Set receives the value for this flag.
func (fs *FileSwitch) Set(v string) error {
	switch v {
	case "true":
		v = "-"
	case "false":
		v = ""
	}
	*fs = FileSwitch(v)
	return nil
}

// Bool reports whether this flag is on.
func (fs *FileSwitch) Bool() bool {
	return len(*fs) > 0
}

// Open returns the writer selected by this flag
// and a function to release it.
//
//   - flag not passed: [io.Discard]
//   - flag passed bare: fallback
//   - flag passed a file name: that file, opened for appending
//     and created if necessary
func (fs *FileSwitch) Open(fallback io.Writer) (w io.Writer, done func() error, err error) {
	switch *fs {
	case "":
		return io.Discard, nopClose, nil
	case "-":
		return fallback, nopClose, nil
	}

	f, err := os.OpenFile(string(*fs), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	return f, f.Close, nil
}

func nopClose() error { return nil }

package cmd

import (
	"encoding/binary"
	"os"

	"github.com/sirupsen/logrus"
)

// seedFromEntropySource draws an RNG seed from the OS entropy device,
// falling back to a fixed seed with a logged warning if the device cannot
// be read — the same behavior and warning message the batch driver this
// tool replaces used when /dev/urandom was unavailable.
func seedFromEntropySource() int64 {
	f, err := os.Open("/dev/urandom")
	if err != nil {
		logrus.Warn("couldn't read from /dev/urandom to seed the RNG; falling back to a fixed seed")
		return 1
	}
	defer f.Close()

	var buf [8]byte
	if _, err := f.Read(buf[:]); err != nil {
		logrus.Warn("couldn't read from /dev/urandom to seed the RNG; falling back to a fixed seed")
		return 1
	}

	seed := int64(binary.LittleEndian.Uint64(buf[:]))
	if seed == 0 {
		seed = 1
	}
	return seed
}

// goxts encrypts and decrypts files sector by sector in XTS mode
// (IEEE 1619), handling trailing partial sectors by ciphertext
// stealing. The mapping of file offsets to sequence numbers is simply
// consecutive: unit i gets sequence number "-seq"+i.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sectorfs/goxts/internal/exitcodes"
	"github.com/sectorfs/goxts/internal/sectorfile"
	"github.com/sectorfs/goxts/internal/speed"
	"github.com/sectorfs/goxts/internal/tlog"
	"github.com/sectorfs/goxts/internal/unitenc"
)

func main() {
	args := parseCliOpts()
	if args.debug {
		tlog.Debug.Enabled = true
	}
	if args.quiet {
		tlog.Info.Enabled = false
	}
	if args.wpanic {
		tlog.Warn.Wpanic = true
		tlog.Debug.Printf("Panicking on warnings")
	}
	if args.version {
		printVersion()
		os.Exit(0)
	}
	if args.speed {
		printVersion()
		speed.Run()
		os.Exit(0)
	}
	if args.cpuprofile != "" {
		onExit := setupCpuprofile(args.cpuprofile)
		defer onExit()
	}
	if err := run(&args); err != nil {
		tlog.Fatal.Println(err)
		exitcodes.Exit(err)
	}
}

// loadKey returns the double key from -key or -keyfile.
func loadKey(args *argContainer) ([]byte, error) {
	switch {
	case args.key != "" && args.keyfile != "":
		return nil, exitcodes.NewErr("-key and -keyfile are mutually exclusive", exitcodes.Usage)
	case args.key != "":
		key, err := hex.DecodeString(args.key)
		if err != nil {
			return nil, exitcodes.NewErr(fmt.Sprintf("decoding -key: %v", err), exitcodes.KeyMaterial)
		}
		return key, nil
	case args.keyfile != "":
		raw, err := os.ReadFile(args.keyfile)
		if err != nil {
			return nil, exitcodes.NewErr(fmt.Sprintf("reading key file: %v", err), exitcodes.ReadKey)
		}
		key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, exitcodes.NewErr(fmt.Sprintf("decoding key file %q: %v", args.keyfile, err),
				exitcodes.KeyMaterial)
		}
		return key, nil
	}
	return nil, exitcodes.NewErr("no key: pass -key or -keyfile", exitcodes.Usage)
}

func run(args *argContainer) error {
	if args.enc == args.dec {
		return exitcodes.NewErr("pass exactly one of -enc and -dec", exitcodes.Usage)
	}
	if args.input == "" || args.output == "" {
		return exitcodes.NewErr("need IN and OUT arguments, see -help", exitcodes.Usage)
	}
	key, err := loadKey(args)
	if err != nil {
		return err
	}
	ue, err := unitenc.NewAES(key)
	if err != nil {
		return exitcodes.NewErr(err.Error(), exitcodes.KeyMaterial)
	}
	codec, err := sectorfile.New(ue, args.unit, args.jobs)
	if err != nil {
		return exitcodes.NewErr(err.Error(), exitcodes.Usage)
	}
	data, err := os.ReadFile(args.input)
	if err != nil {
		return exitcodes.NewErr(err.Error(), exitcodes.OpenFile)
	}
	tlog.Debug.Printf("%d bytes in %d-byte units, first sequence number %d",
		len(data), codec.UnitSize(), args.seq)

	var out []byte
	if args.enc {
		out, err = codec.Encrypt(data, args.seq)
	} else {
		out, err = codec.Decrypt(data, args.seq)
	}
	if err != nil {
		if errors.Is(err, unitenc.ErrUnitLen) {
			return exitcodes.NewErr(err.Error(), exitcodes.UnitLen)
		}
		return exitcodes.NewErr(err.Error(), exitcodes.Other)
	}
	if err := os.WriteFile(args.output, out, 0600); err != nil {
		return exitcodes.NewErr(err.Error(), exitcodes.OpenFile)
	}
	op := "Encrypted"
	if args.dec {
		op = "Decrypted"
	}
	tlog.Info.Printf("%s %d bytes: %s -> %s", op, len(data), args.input, args.output)
	return nil
}

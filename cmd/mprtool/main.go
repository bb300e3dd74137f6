// Command mprtool builds, inspects and stores MPR delegation lists.
//
//	mprtool build -o hints.bin 10:/edge/a 5:/edge/b
//	mprtool show hints.bin
//	mprtool db put /objects/video hints.bin
//	mprtool db get /objects/video
//	mprtool db del /objects/video
//	mprtool db names
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/openndn/mprlist"
	"github.com/openndn/mprlist/hintdb"
	"github.com/openndn/mprlist/name"
	"github.com/openndn/mprlist/tlv"
)

const usage = `usage: mprtool [--config FILE] [--verbose] COMMAND

commands:
  build -o FILE [--type content|mprlist] [--unsorted] [--conflict replace|append|skip] PREF:/NAME ...
  show [--no-sort] FILE
  db put OBJECT-NAME FILE
  db get [--no-sort] OBJECT-NAME
  db del OBJECT-NAME
  db names
`

var log zerolog.Logger

func main() {
	global := pflag.NewFlagSet("mprtool", pflag.ExitOnError)
	global.SetInterspersed(false)
	configPath := global.String("config", "", "path to TOML config file")
	verbose := global.BoolP("verbose", "v", false, "enable debug logging")
	global.Parse(os.Args[1:])

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	args := global.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	switch args[0] {
	case "build":
		err = cmdBuild(cfg, args[1:])
	case "show":
		err = cmdShow(args[1:])
	case "db":
		err = cmdDB(cfg, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func outerType(s string) (uint32, error) {
	switch s {
	case "content":
		return tlv.TypeContent, nil
	case "mprlist":
		return tlv.TypeMPRList, nil
	default:
		return 0, fmt.Errorf("unknown outer type %q (want content or mprlist)", s)
	}
}

func conflictPolicy(s string) (mprlist.InsertConflict, error) {
	switch s {
	case "replace":
		return mprlist.InsertReplace, nil
	case "append":
		return mprlist.InsertAppend, nil
	case "skip":
		return mprlist.InsertSkip, nil
	default:
		return 0, fmt.Errorf("unknown conflict policy %q (want replace, append or skip)", s)
	}
}

// parseEntry splits a "PREF:/NAME" argument.
func parseEntry(arg string) (uint64, name.Name, error) {
	prefStr, uri, ok := strings.Cut(arg, ":")
	if !ok {
		return 0, nil, fmt.Errorf("entry %q is not of the form PREF:/NAME", arg)
	}
	pref, err := strconv.ParseUint(prefStr, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("entry %q: bad preference: %w", arg, err)
	}
	nm, err := name.Parse(uri)
	if err != nil {
		return 0, nil, fmt.Errorf("entry %q: %w", arg, err)
	}
	return pref, nm, nil
}

func buildList(entries []string, sorted bool, onConflict mprlist.InsertConflict) (*mprlist.List, error) {
	l := mprlist.New()
	if !sorted {
		l = mprlist.NewUnsorted()
	}
	for _, e := range entries {
		pref, nm, err := parseEntry(e)
		if err != nil {
			return nil, err
		}
		if added, err := l.Insert(pref, nm, onConflict); err != nil {
			return nil, err
		} else if !added {
			log.Debug().Str("entry", e).Msg("skipped duplicate name")
		}
	}
	return l, nil
}

func cmdBuild(cfg Config, args []string) error {
	flags := pflag.NewFlagSet("build", pflag.ExitOnError)
	out := flags.StringP("out", "o", "", "output file (required)")
	typStr := flags.String("type", cfg.OuterType, "outer TLV type: content or mprlist")
	unsorted := flags.Bool("unsorted", false, "keep entries in argument order")
	conflictStr := flags.String("conflict", "replace", "duplicate-name policy: replace, append or skip")
	flags.Parse(args)

	if *out == "" || flags.NArg() == 0 {
		return fmt.Errorf("build needs -o FILE and at least one PREF:/NAME entry")
	}
	typ, err := outerType(*typStr)
	if err != nil {
		return err
	}
	onConflict, err := conflictPolicy(*conflictStr)
	if err != nil {
		return err
	}
	l, err := buildList(flags.Args(), !*unsorted, onConflict)
	if err != nil {
		return err
	}
	wire, err := l.Encode(typ)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, wire, 0o644); err != nil {
		return err
	}
	log.Info().Str("file", *out).Int("bytes", len(wire)).Int("delegations", l.Len()).Msg("wrote MPR list")
	return nil
}

func cmdShow(args []string) error {
	flags := pflag.NewFlagSet("show", pflag.ExitOnError)
	noSort := flags.Bool("no-sort", false, "print delegations in wire order")
	flags.Parse(args)

	if flags.NArg() != 1 {
		return fmt.Errorf("show needs exactly one FILE argument")
	}
	wire, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return err
	}
	l, err := mprlist.DecodeBytes(wire, !*noSort)
	if err != nil {
		return err
	}
	printList(l)
	return nil
}

func cmdDB(cfg Config, args []string) error {
	flags := pflag.NewFlagSet("db", pflag.ExitOnError)
	dbPath := flags.String("db", cfg.DBPath, "path to the hint database")
	noSort := flags.Bool("no-sort", false, "print delegations in stored wire order")
	flags.Parse(args)

	if flags.NArg() == 0 {
		return fmt.Errorf("db needs a subcommand: put, get, del or names")
	}
	db, err := hintdb.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Debug().Str("db", *dbPath).Msg("opened hint database")

	sub, rest := flags.Arg(0), flags.Args()[1:]
	switch sub {
	case "put":
		if len(rest) != 2 {
			return fmt.Errorf("db put needs OBJECT-NAME and FILE")
		}
		obj, err := name.Parse(rest[0])
		if err != nil {
			return err
		}
		wire, err := os.ReadFile(rest[1])
		if err != nil {
			return err
		}
		l, err := mprlist.DecodeBytes(wire, false)
		if err != nil {
			return err
		}
		return db.Put(obj, l)
	case "get":
		if len(rest) != 1 {
			return fmt.Errorf("db get needs OBJECT-NAME")
		}
		obj, err := name.Parse(rest[0])
		if err != nil {
			return err
		}
		l, err := db.Get(obj, !*noSort)
		if err != nil {
			return err
		}
		printList(l)
		return nil
	case "del":
		if len(rest) != 1 {
			return fmt.Errorf("db del needs OBJECT-NAME")
		}
		obj, err := name.Parse(rest[0])
		if err != nil {
			return err
		}
		return db.Delete(obj)
	case "names":
		names, err := db.Names()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	default:
		return fmt.Errorf("unknown db subcommand %q", sub)
	}
}

func printList(l *mprlist.List) {
	for d := range l.All() {
		fmt.Printf("%10d  %s\n", d.Preference, d.Name)
	}
}

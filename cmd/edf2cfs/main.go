// Command edf2cfs converts polysomnography recordings in EDF format
// into compressed feature-set (CFS) containers, following the same
// cli.App-plus-worker-pool shape as the teacher's GSF conversion tool.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/amiyapatanaik/edf2cfs"
	"github.com/amiyapatanaik/edf2cfs/decode"
	"github.com/amiyapatanaik/edf2cfs/search"
)

func main() {
	app := &cli.App{
		Name:  "edf2cfs",
		Usage: "convert EDF polysomnography recordings into compressed feature sets",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "a", Usage: "EDF signal label bound to the C3 EEG role"},
			&cli.StringFlag{Name: "b", Usage: "EDF signal label bound to the C4 EEG role"},
			&cli.StringFlag{Name: "x", Usage: "EDF signal label bound to the left EOG role"},
			&cli.StringFlag{Name: "z", Usage: "EDF signal label bound to the right EOG role"},
			&cli.StringFlag{Name: "d", Usage: "directory of EDF files to convert (non-recursive)"},
			&cli.BoolFlag{Name: "q", Usage: "suppress per-file success messages"},
			&cli.BoolFlag{Name: "o", Usage: "overwrite an existing CFS output"},
			&cli.StringFlag{Name: "l", Usage: "write an HTML run log to the given path (the path is used as given, not derived from the inputs)"},
			&cli.BoolFlag{Name: "in-memory", Usage: "read each EDF file fully into memory before decoding"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	files, err := gatherFiles(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if len(files) == 0 {
		return cli.Exit("no EDF files given: pass paths, or -d a directory", 1)
	}

	sel := edf2cfs.ChannelSelection{
		C3: c.String("a"),
		C4: c.String("b"),
		EL: c.String("x"),
		ER: c.String("z"),
	}

	if sel.C3 == "" || sel.C4 == "" || sel.EL == "" || sel.ER == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return cli.Exit("channel labels (-a -b -x -z) are required when stdin is not a terminal", 1)
		}
		sel, err = promptForChannels(files[0], sel)
		if err != nil {
			return cli.Exit(err, 1)
		}
	}

	params := edf2cfs.JobParams{
		Selection: sel,
		Overwrite: c.Bool("o"),
		InMemory:  c.Bool("in-memory"),
	}

	pool := edf2cfs.NewPool()
	defer pool.StopAndWait()

	summary := edf2cfs.Dispatch(pool, files, params, edf2cfs.DispatchOptions{
		Quiet:   c.Bool("q"),
		HTMLLog: c.String("l"),
	})

	log.Printf("edf2cfs: %d converted, %d failed", summary.Success, summary.Failure)

	return nil
}

// gatherFiles resolves the CLI's positional EDF paths plus an optional
// -d directory listing (spec §6.2) into one file list.
func gatherFiles(c *cli.Context) ([]string, error) {
	files := append([]string{}, c.Args().Slice()...)

	if dir := c.String("d"); dir != "" {
		found, err := search.FindEdf(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	return files, nil
}

// promptForChannels lists the first file's signal labels and reads a
// line-numbered choice per missing role from stdin (spec §6.2,
// SPEC_FULL.md §C.2). Roles already bound by a flag are left alone.
func promptForChannels(path string, sel edf2cfs.ChannelSelection) (edf2cfs.ChannelSelection, error) {
	src, err := decode.Open(path, false)
	if err != nil {
		return sel, fmt.Errorf("opening %s for channel selection: %w", path, err)
	}
	defer src.Close()

	fmt.Println("Signals in", path)
	for _, s := range src.Signals {
		fmt.Printf("  [%d] %s\n", s.Index, s.Label)
	}

	reader := bufio.NewReader(os.Stdin)
	ask := func(role string, current string) (string, error) {
		if current != "" {
			return current, nil
		}
		fmt.Printf("Select index for %s: ", role)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		idx, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || idx < 0 || idx >= len(src.Signals) {
			return "", fmt.Errorf("invalid selection for %s", role)
		}
		return src.Signals[idx].Label, nil
	}

	var err1, err2, err3, err4 error
	sel.C3, err1 = ask("C3", sel.C3)
	sel.C4, err2 = ask("C4", sel.C4)
	sel.EL, err3 = ask("EL", sel.EL)
	sel.ER, err4 = ask("ER", sel.ER)

	for _, e := range []error{err1, err2, err3, err4} {
		if e != nil {
			return sel, e
		}
	}

	return sel, nil
}

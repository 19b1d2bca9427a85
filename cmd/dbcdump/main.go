// Command dbcdump is a thin command-line front end over the dbc package:
// describe a database, decode a payload against it, or encode one.
package main

import (
	"fmt"
	"github.com/fatih/color"
	"github.com/urfave/cli"
	"github.com/wyfbw07/godbc"
	"os"
	"strconv"
	"strings"
)

func fatal(err error) {
	red := color.New(color.FgHiRed)
	red.EnableColor()
	fmt.Fprintln(os.Stderr, red.SprintFunc()(err.Error()))
	os.Exit(1)
}

func loadDatabase(c *cli.Context) *dbc.Database {
	path := c.Args().First()
	if path == "" {
		fatal(fmt.Errorf("dbcdump: a .dbc file path is required"))
	}
	db, err := dbc.Parse(path)
	if err != nil {
		fatal(err)
	}
	return db
}

// parsePayload turns "12 34 00 FF" into its constituent bytes.
func parsePayload(s string) ([]byte, error) {
	fields := strings.Fields(s)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("dbcdump: invalid payload byte %q: %w", f, err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

func describeCommand(c *cli.Context) error {
	db := loadDatabase(c)
	cyan := color.New(color.FgHiCyan)
	cyan.EnableColor()
	fmt.Println(cyan.SprintFunc()(db.Describe()))
	return nil
}

func decodeCommand(c *cli.Context) error {
	db := loadDatabase(c)
	msgID, err := strconv.ParseUint(c.String("id"), 0, 32)
	if err != nil {
		fatal(fmt.Errorf("dbcdump: invalid message id: %w", err))
	}
	payload, err := parsePayload(c.String("payload"))
	if err != nil {
		fatal(err)
	}
	values, err := db.Decode(uint32(msgID), payload, len(payload))
	if err != nil {
		fatal(err)
	}
	green := color.New(color.FgHiGreen)
	green.EnableColor()
	for name, v := range values {
		fmt.Printf("%s = %v\n", green.SprintFunc()(name), v)
	}
	return nil
}

func encodeCommand(c *cli.Context) error {
	db := loadDatabase(c)
	msgID, err := strconv.ParseUint(c.String("id"), 0, 32)
	if err != nil {
		fatal(fmt.Errorf("dbcdump: invalid message id: %w", err))
	}

	var assignments []dbc.SignalAssignment
	for _, raw := range c.StringSlice("set") {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			fatal(fmt.Errorf("dbcdump: --set must be name=value, got %q", raw))
		}
		v, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			fatal(fmt.Errorf("dbcdump: invalid value for %q: %w", parts[0], err))
		}
		assignments = append(assignments, dbc.SignalAssignment{Name: parts[0], Value: v})
	}

	buf := make([]byte, 64)
	dlc, err := db.Encode(uint32(msgID), assignments, buf, len(buf))
	if err != nil {
		fatal(err)
	}
	yellow := color.New(color.FgHiYellow)
	yellow.EnableColor()
	fmt.Println(yellow.SprintFunc()(fmt.Sprintf("% X", buf[:dlc])))
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "dbcdump"
	app.Usage = "inspect, decode and encode CAN frames against a DBC database"
	app.ArgsUsage = "<file.dbc>"
	app.Commands = []cli.Command{
		{
			Name:   "describe",
			Usage:  "print every message and signal in the database",
			Action: describeCommand,
		},
		{
			Name:  "decode",
			Usage: "decode a hex payload against one message",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "id", Usage: "message id (decimal or 0x...)"},
				cli.StringFlag{Name: "payload", Usage: "space-separated hex bytes, e.g. \"12 34 00\""},
			},
			Action: decodeCommand,
		},
		{
			Name:  "encode",
			Usage: "encode signal assignments into a payload",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "id", Usage: "message id (decimal or 0x...)"},
				cli.StringSliceFlag{Name: "set", Usage: "signal=value, may be repeated"},
			},
			Action: encodeCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

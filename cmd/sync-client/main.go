package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"pokedex/pkg/logging"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP roster feed address")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	types := flag.String("types", "", "comma-separated event types to show (default all)")
	flag.Parse()

	log := logging.Component("sync-client")
	filter := parseTypes(*types)

	for {
		if err := run(*addr, *pretty, filter, os.Stdout); err != nil {
			log.Warn().Err(err).Str("addr", *addr).Msg("disconnected")
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func parseTypes(raw string) map[string]bool {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	out := make(map[string]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out[t] = true
		}
	}
	return out
}

func run(addr string, pretty bool, filter map[string]bool, out io.Writer) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log := logging.Component("sync-client")
	log.Info().Str("addr", addr).Msg("connected")
	return relay(conn, pretty, filter, out)
}

// relay copies feed lines to out, dropping events whose type is not in
// filter (when set). Non-JSON lines are printed as-is.
func relay(r io.Reader, pretty bool, filter map[string]bool, out io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Bytes()

		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			fmt.Fprintln(out, string(line))
			continue
		}
		if typ, _ := obj["type"].(string); filter != nil && typ != "welcome" && !filter[typ] {
			continue
		}

		if !pretty {
			fmt.Fprintln(out, string(line))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Fprintln(out, string(b))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

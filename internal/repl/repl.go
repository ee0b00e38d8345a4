package repl

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

// ServerResponse is one framed reply as seen by the client side.
type ServerResponse struct {
	Code   int
	Length int
	Body   string
}

// Start runs the interactive query shell against a running server.
// A request is typed line by line and submitted with a blank line;
// the shell forces a fixed16 response header so it can frame replies.
func Start(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer conn.Close()

	fmt.Printf("Connected to livequery at %s\n", addr)
	fmt.Println("End a request with a blank line. Type 'exit' or '\\q' to quit, '\\debug' to toggle response dumps.")

	scanner := bufio.NewScanner(os.Stdin)
	server := bufio.NewReader(conn)
	debug := false

	for {
		request, quit := readRequest(scanner, &debug)
		if quit {
			return nil
		}
		if request == "" {
			continue
		}

		if err := sendRequest(conn, request); err != nil {
			return fmt.Errorf("send request: %w", err)
		}
		resp, err := readResponse(server)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if debug {
			spew.Dump(resp)
			continue
		}
		printResponse(os.Stdout, resp)
	}
}

func readRequest(scanner *bufio.Scanner, debug *bool) (request string, quit bool) {
	var lines []string
	for {
		if len(lines) == 0 {
			fmt.Print("> ")
		} else {
			fmt.Print("| ")
		}
		if !scanner.Scan() {
			return "", true
		}
		line := scanner.Text()

		if len(lines) == 0 {
			switch strings.TrimSpace(line) {
			case "exit", "\\q":
				return "", true
			case "\\debug":
				*debug = !*debug
				fmt.Printf("debug dumps %v\n", onOff(*debug))
				continue
			case "":
				continue
			}
		}

		if strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), false
		}
		lines = append(lines, line)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// sendRequest ships the request block, forcing a fixed16 header so the
// reply can be framed.
func sendRequest(conn net.Conn, request string) error {
	var b strings.Builder
	for _, line := range strings.Split(request, "\n") {
		if strings.HasPrefix(line, "ResponseHeader:") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("ResponseHeader: fixed16\n\n")
	_, err := io.WriteString(conn, b.String())
	return err
}

// readResponse parses the fixed16 status line and reads the body it
// announces: "<code:3> <length:11>\n".
func readResponse(r *bufio.Reader) (*ServerResponse, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	header = strings.TrimRight(header, "\n")
	if len(header) != 15 {
		return nil, fmt.Errorf("malformed fixed16 header %q", header)
	}
	code, err := strconv.Atoi(strings.TrimSpace(header[:3]))
	if err != nil {
		return nil, fmt.Errorf("malformed status code in %q", header)
	}
	length, err := strconv.Atoi(strings.TrimSpace(header[4:]))
	if err != nil {
		return nil, fmt.Errorf("malformed body length in %q", header)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return &ServerResponse{Code: code, Length: length, Body: string(body)}, nil
}

// printResponse renders a reply, colorizing rows by the check-output
// keywords monitoring plugins emit.
func printResponse(w io.Writer, resp *ServerResponse) {
	if resp.Code != 200 {
		color.New(color.FgRed).Fprintf(w, "Error %d: %s", resp.Code, resp.Body)
		return
	}

	for _, line := range strings.Split(strings.TrimRight(resp.Body, "\n"), "\n") {
		switch {
		case strings.Contains(line, "CRITICAL"):
			color.New(color.FgRed).Fprintln(w, line)
		case strings.Contains(line, "WARN"):
			color.New(color.FgYellow).Fprintln(w, line)
		case strings.Contains(line, "OK"):
			color.New(color.FgGreen).Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
}

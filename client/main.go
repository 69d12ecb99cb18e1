// Interactive TCP client for the battle arena. Connects to the server,
// prints everything it broadcasts (grid snapshots and replies) and forwards
// stdin lines as commands.
package main

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Usage: %s <host> <port>", os.Args[0])
	}
	addr := net.JoinHostPort(os.Args[1], os.Args[2])

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Fatalf("Connect failed: %v", err)
	}
	defer conn.Close()
	log.Printf("Connected to %s", addr)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		conn.Close()
		os.Exit(0)
	}()

	// Receive loop: print server output as it arrives.
	done := make(chan struct{})
	go func() {
		defer close(done)
		reader := bufio.NewReader(conn)
		buf := make([]byte, 1024)
		for {
			n, err := reader.Read(buf)
			if n > 0 {
				fmt.Print(string(buf[:n]))
			}
			if err != nil {
				fmt.Println("Disconnected from server.")
				return
			}
		}
	}()

	// Forward stdin commands until QUIT or EOF.
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}
		if _, err := fmt.Fprintf(conn, "%s\n", cmd); err != nil {
			break
		}
		if strings.EqualFold(cmd, "QUIT") {
			break
		}
	}
	conn.Close()
	<-done
}

// Callgen generates traffic against the call-logging demo server so the
// interception log lines and /metrics counters can be observed.
//
// Usage:
//
//	go run scripts/callgen.go -addr http://localhost:8080 -n 50
package main

import (
	"bytes"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the demo server")
	n := flag.Int("n", 20, "number of request rounds")
	delay := flag.Duration("delay", 50*time.Millisecond, "pause between rounds")
	flag.Parse()

	client := &http.Client{Timeout: 5 * time.Second}
	var failures int

	for i := 0; i < *n; i++ {
		body := fmt.Sprintf(`{"name":"user%d","email":"user%d@example.com"}`, i, i)
		if err := post(client, *addr+"/users", body); err != nil {
			failures++
		}

		// Every third round asks for a user that does not exist, to
		// exercise the error logging path.
		if i%3 == 0 {
			if err := get(client, fmt.Sprintf("%s/users/%d", *addr, 100000+i)); err != nil {
				failures++
			}
		}

		if err := get(client, *addr+"/users"); err != nil {
			failures++
		}

		time.Sleep(*delay)
	}

	if err := get(client, *addr+"/metrics"); err != nil {
		fmt.Fprintf(os.Stderr, "metrics fetch failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("done: %d rounds, %d transport failures\n", *n, failures)
}

func post(client *http.Client, url, body string) error {
	resp, err := client.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

func get(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

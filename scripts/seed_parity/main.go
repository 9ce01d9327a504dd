// Command seed_parity compares the read-only endpoints of two running
// dashboard instances, typically one seeded from fixtures and one from
// PostgreSQL, and exits non-zero on critical differences.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

var defaultTargets = []target{
	{Path: "/api/v1/districts?limit=100", Critical: true},
	{Path: "/api/v1/schools?limit=100", Critical: true},
	{Path: "/api/v1/teachers?limit=100", Critical: true},
	{Path: "/api/v1/students?limit=100", Critical: true},
	{Path: "/api/v1/students/at-risk", Critical: true},
	{Path: "/api/v1/skills?n=10"},
	{Path: "/api/v1/dashboard"},
	{Path: "/api/v1/time-travel"},
}

// volatileKeys differ between instances regardless of seed.
var volatileKeys = map[string]struct{}{
	"generatedAt":        {},
	"timestamp":          {},
	"createdAt":          {},
	"updatedAt":          {},
	"expiresAt":          {},
	"meta":               {},
	"performanceHistory": {},
}

type result struct {
	Target      target
	LeftStatus  int
	RightStatus int
	BodyMatch   bool
	Err         error
	LeftTook    time.Duration
	RightTook   time.Duration
}

func (r result) failed() bool {
	return r.Err != nil || r.LeftStatus != r.RightStatus || !r.BodyMatch
}

func main() {
	var (
		left        string
		right       string
		targetsPath string
		timeout     time.Duration
	)
	flag.StringVar(&left, "left", "http://localhost:8080", "Reference instance base URL")
	flag.StringVar(&right, "right", "http://localhost:8081", "Candidate instance base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON file with a targets array")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	var results []result
	critical, optional := 0, 0
	for _, t := range targets {
		res := compare(client, left, right, t)
		if res.failed() {
			if t.Critical {
				critical++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	report(os.Stdout, results)
	fmt.Printf("Critical diffs: %d, Optional diffs: %d\n", critical, optional)
	if critical > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f targetFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return f.Targets, nil
}

func compare(client *http.Client, left, right string, t target) result {
	res := result{Target: t}
	leftStatus, leftBody, leftTook, err := fetch(client, left, t.Path)
	if err != nil {
		res.Err = fmt.Errorf("left: %w", err)
		return res
	}
	rightStatus, rightBody, rightTook, err := fetch(client, right, t.Path)
	if err != nil {
		res.Err = fmt.Errorf("right: %w", err)
		return res
	}
	res.LeftStatus, res.RightStatus = leftStatus, rightStatus
	res.LeftTook, res.RightTook = leftTook, rightTook
	res.BodyMatch = equivalent(leftBody, rightBody)
	return res
}

func fetch(client *http.Client, base, path string) (int, []byte, time.Duration, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	start := time.Now()
	resp, err := client.Get(strings.TrimRight(base, "/") + path)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// equivalent compares two JSON bodies after dropping volatile keys.
func equivalent(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var av, bv interface{}
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(strip(av), strip(bv))
}

func strip(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			if _, skip := volatileKeys[k]; skip {
				continue
			}
			out[k] = strip(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = strip(inner)
		}
		return out
	}
	return v
}

func report(w io.Writer, results []result) {
	fmt.Fprintln(w, "Seed Parity Report")
	fmt.Fprintln(w, "==================")
	for _, r := range results {
		status := "OK"
		switch {
		case r.Err != nil:
			status = "ERROR"
		case r.failed():
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] GET %s\n", status, r.Target.Path)
		if r.Err != nil {
			fmt.Fprintf(w, "  Error: %v\n", r.Err)
			continue
		}
		fmt.Fprintf(w, "  Left: %d (%s) | Right: %d (%s) | Body match: %t | Critical: %t\n",
			r.LeftStatus, r.LeftTook, r.RightStatus, r.RightTook, r.BodyMatch, r.Target.Critical)
	}
}

package httputil_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/censusplot/pkg/httputil"
)

func ExampleCache() {
	dir := filepath.Join(os.TempDir(), "censusplot-example")
	cache, err := httputil.NewCache(dir, 24*time.Hour)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer os.RemoveAll(dir)

	datasets := cache.Namespace("dataset:")
	if err := datasets.Set("https://example.com/data.csv", []byte("state,abbr")); err != nil {
		fmt.Println("Error:", err)
		return
	}

	var body []byte
	if ok, err := datasets.Get("https://example.com/data.csv", &body); ok && err == nil {
		fmt.Println(string(body))
	}
	// Output:
	// state,abbr
}

func ExampleCache_miss() {
	dir := filepath.Join(os.TempDir(), "censusplot-example-miss")
	cache, _ := httputil.NewCache(dir, time.Hour)
	defer os.RemoveAll(dir)

	var result string
	ok, err := cache.Get("nonexistent", &result)
	fmt.Println("Found:", ok)
	fmt.Println("Error:", err)
	// Output:
	// Found: false
	// Error: <nil>
}

// Command test-classify is a manual diagnostic for window
// classification and strategy selection. It waits 3 seconds, then
// reports the foreground window, its category, the resolved
// compatibility profile, and the dry-run strategy for sample texts. It
// never performs an injection.
//
// Usage:
//
//	go run ./cmd/test-classify [--profiles table.yaml]
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/chaz8081/typesink/internal/classify"
	"github.com/chaz8081/typesink/internal/inject"
	"github.com/chaz8081/typesink/internal/profile"
	"github.com/chaz8081/typesink/internal/window"
)

func main() {
	profiles := flag.String("profiles", "", "optional compatibility-table overrides (YAML)")
	flag.Parse()

	classifier := classify.New()
	store := profile.NewStore(classifier)
	if *profiles != "" {
		version, err := store.Reload(*profiles)
		if err != nil {
			log.Fatalf("profile table: %v", err)
		}
		fmt.Printf("Loaded profile table %s (version %d)\n", *profiles, version)
	}

	engine := inject.NewEngine(inject.Options{Classifier: classifier, Store: store})

	fmt.Println("Focus the window to inspect now!")
	for i := 3; i > 0; i-- {
		fmt.Printf("%d...\n", i)
		time.Sleep(time.Second)
	}

	provider := window.NewOSProvider()
	info, err := provider.Foreground()
	if err != nil {
		log.Fatalf("foreground window: %v", err)
	}

	cat := engine.ClassifyOnly(info)
	prof := store.Resolve(info)

	fmt.Println()
	fmt.Printf("Process:  %s\n", info.ProcessName)
	fmt.Printf("Class:    %q\n", info.WindowClass)
	fmt.Printf("Title:    %q\n", info.Title)
	fmt.Printf("Category: %s\n", cat)
	fmt.Printf("Profile:  preferred=%s fallbacks=%v delay=%dms preposition=%t limitations=%v\n",
		prof.Preferred, prof.Fallbacks, prof.InterCharDelayMS, prof.PrePositionCorrection, prof.Limitations)

	for _, sample := range []string{"plain ascii text", "Hi \U0001F44B"} {
		fmt.Printf("Strategy for %q: %s\n", sample, engine.DryRunStrategy(prof, sample))
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"sala-api/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "", "Path to badger DB (falls back to BADGER_FILEPATH)")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg: or participant:)")
	flag.Parse()

	path := *dbPath
	if path == "" {
		_ = godotenv.Load()
		path = os.Getenv("BADGER_FILEPATH")
	}
	if path == "" {
		log.Fatal("No DB path: pass -db or set BADGER_FILEPATH")
	}

	db, err := openDB(path)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	header := fmt.Sprintf("  ====== room store %s (%s) ======", path, *prefix)
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(header))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Time", "Who", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				table.Append(toRow(key, v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func toRow(key string, val []byte) []string {
	switch {
	case strings.HasPrefix(key, "msg:"):
		message, err := repositories.DecodeMessage(val)
		if err != nil {
			// Log the broken record and keep scanning instead of aborting
			fmt.Printf("Error decoding key %s: %v\n", key, err)
			break
		}
		return []string{
			key,
			strings.ToUpper(string(message.Type)),
			message.At.Format("15:04:05"),
			fmt.Sprintf("%s -> %s", message.From, message.To),
			message.Text,
		}
	case strings.HasPrefix(key, "participant:"):
		participant, err := repositories.DecodeParticipant(val)
		if err != nil {
			fmt.Printf("Error decoding key %s: %v\n", key, err)
			break
		}
		return []string{
			key,
			"PARTICIPANT",
			participant.LastStatus.Format("15:04:05"),
			participant.Name,
			fmt.Sprintf("last status %d", participant.LastStatus.UnixMilli()),
		}
	}
	return []string{key, "RAW", "--:--:--", "--------", fmt.Sprintf("%d bytes", len(val))}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// A dirty value log needs one writable open to truncate it before
		// a read-only open works again.
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}

// Command superuser seeds an administrator account directly against the
// database. Run it once after deployment; regular accounts register over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/arcbound/accountd/internal/app"
	"github.com/arcbound/accountd/internal/service"
	"github.com/arcbound/accountd/internal/store/drivers/sqlite"
)

func main() {
	var (
		email    = flag.String("email", "", "email address for the superuser")
		username = flag.String("username", "", "username for the superuser")
		password = flag.String("password", "", "password for the superuser")
	)
	flag.Parse()

	if *email == "" || *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: superuser -email ... -username ... -password ...")
		os.Exit(2)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.DatabasePath)
	st, err := sqlite.NewStore(dsn)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		fmt.Fprintln(os.Stderr, "apply migrations:", err)
		os.Exit(1)
	}

	accounts := &service.AccountService{Store: st}
	account, err := accounts.CreateSuperuser(context.Background(), *email, *username, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create superuser:", err)
		os.Exit(1)
	}

	fmt.Printf("superuser created: id=%d username=%s\n", account.ID, account.Username)
}

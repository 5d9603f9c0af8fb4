// Command iirserver serves the Butterworth filter over HTTP.
//
// Endpoints:
//
//	POST /iir/v1/filter  {"signal": [...], "fs": 100, "lowcut": 3, "highcut": 10, "order": 4}
//	POST /iir/v1/design  {"fs": 100, "highcut": 10}
//	GET  /iir/v1/healthz
//
// Designs can be cached in memory, sqlite or MySQL with -cache.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"

	"github.com/cwbudde/algo-iir/frame"
	"github.com/cwbudde/algo-iir/internal/coeffstore"
	"github.com/cwbudde/algo-iir/server"
)

var (
	listen   = flag.String("listen", ":8080", "Address to listen on.")
	certFile = flag.String("certFile", "", "Path of the file containing the certificate (including the chained intermediates and root) for the TLS connection.")
	keyFile  = flag.String("keyFile", "", "Path of the file containing the key for the TLS connection.")
	cache    = flag.String("cache", "memory", "Coefficient cache to use (one of: memory, sqlite, mysql). Empty disables caching.")

	// SQLite
	sqliteFile = flag.String("sqliteFile", "/tmp/iirserver.db", "File path of the sqlite DB file to use.")

	// MySQL
	mysqlServer       = flag.String("mysqlServer", "127.0.0.1:3306", "MySQL TCP server endpoint to connect to (IP/DNS and port).")
	mysqlUser         = flag.String("mysqlUser", "", "MySQL DB user.")
	mysqlPasswordFile = flag.String("mysqlPasswordFile", "", "Path to the file containing the password for the MySQL user.")
	mysqlDBName       = flag.String("mysqlDBName", "iir", "Name of the DB to use.")
)

func main() {
	// Set defaults for glog flags. Can be overridden via cmdline.
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "WARNING")
	flag.Set("v", "1")
	flag.Parse()
	defer glog.Flush()

	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		glog.Exit(err)
	}
}

func run(ctx context.Context) error {
	cfg := coeffstore.Config{
		Backend:     *cache,
		SQLiteFile:  *sqliteFile,
		MySQLServer: *mysqlServer,
		MySQLUser:   *mysqlUser,
		MySQLDBName: *mysqlDBName,
	}
	if *mysqlPasswordFile != "" {
		pass, err := os.ReadFile(*mysqlPasswordFile)
		if err != nil {
			glog.Exitf("unable to read MySQL password file %q: %s", *mysqlPasswordFile, err)
		}
		cfg.MySQLPassword = strings.TrimSpace(string(pass))
	}

	store, closeStore, err := coeffstore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	var designer frame.Designer
	if store != nil {
		designer = &coeffstore.Designer{Store: store}
	}

	srv := &http.Server{
		Addr:              *listen,
		Handler:           server.New(designer).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			glog.Warningf("shutdown: %s", err)
		}
	}()

	if *certFile != "" || *keyFile != "" {
		err = srv.ListenAndServeTLS(*certFile, *keyFile)
	} else {
		glog.Infoln("Resorting to serving HTTP because there was no certificate and key defined.")
		err = srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

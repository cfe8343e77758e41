//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//
// POSTGRES: the (optional) vector model cache
//
// models are cheap to rebuild from the sample corpora but expensive for a real one;
// with "-pc" trained embeddings live in PostgreSQL and survive restarts
//

const (
	DEFAULTPSQLHOST = "127.0.0.1"
	DEFAULTPSQLPORT = 5432
	DEFAULTPSQLUSER = "hypatia"
	DEFAULTPSQLDB   = "hypatiaDB"
)

type PostgresLogin struct {
	Host   string
	Port   int
	User   string
	Pass   string
	DBName string
}

// FillPSQLPoool - build the pgxpool that vector caching will Acquire() from
func FillPSQLPoool() *pgxpool.Pool {
	const (
		UTPL    = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
		FAIL1   = "Configuration error. Could not execute ParseConfig(url) via '%s'"
		FAIL2   = "Could not connect to PostgreSQL"
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running and serving on port %d`
		ERRSRV  = `server error`
		FAILSRV = `'%s': there is a configuration problem; see the following response from PostgreSQL:`
	)

	min := 2
	max := Config.WorkerCount + 2

	pl := Config.PGLogin
	url := fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, min, max)

	config, e := pgxpool.ParseConfig(url)
	if e != nil {
		msg(fmt.Sprintf(FAIL1, url), MSGMAND)
		os.Exit(0)
	}

	thepool, e := pgxpool.NewWithConfig(context.Background(), config)
	if e != nil {
		msg(FAIL2, MSGMAND)
		if strings.Contains(e.Error(), ERRRUN) {
			msg(fmt.Sprintf(FAILRUN, ERRRUN, Config.PGLogin.Port), MSGMAND)
		}
		if strings.Contains(e.Error(), ERRSRV) {
			msg(fmt.Sprintf(FAILSRV, ERRSRV), MSGMAND)
			parts := strings.Split(e.Error(), ERRSRV)
			msg(parts[1], MSGCRIT)
		}
		messenger.ExitOrHang(0)
	}
	return thepool
}

// GetPSQLconnection - Acquire() a connection from the main pgxpool
func GetPSQLconnection() *pgxpool.Conn {
	const (
		FAIL1   = "GetPSQLconnection() could not Acquire() from SQLPool."
		FAIL2   = `Your password in '%s' is incorrect?`
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running and serving on port %d`
	)

	dbc, e := SQLPool.Acquire(context.Background())
	if e != nil {
		msg(FAIL1, MSGMAND)
		if strings.Contains(e.Error(), ERRRUN) {
			msg(fmt.Sprintf(FAILRUN, ERRRUN, Config.PGLogin.Port), MSGCRIT)
		} else {
			msg(fmt.Sprintf(FAIL2, CONFIGBASIC), MSGMAND)
		}
		messenger.ExitOrHang(0)
	}
	return dbc
}

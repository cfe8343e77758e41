//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

//
// SQLITE: the in-memory corpus store
//

// the modernc driver is pure go: no cgo, no compiler toolchain needed on the user's machine

var (
	SQLITEConn *sql.DB
)

// OpenSQLITE - open the in-memory corpus database and hold the connection open
func OpenSQLITE() *sql.DB {
	const (
		FAIL = `OpenSQLITE() failed to open the corpus db`
	)

	db, err := sql.Open("sqlite", DEFAULTCORPUSDB)
	chkf(err, FAIL)

	// a ":memory:" database evaporates when its last connection closes; so never let that happen
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(0)

	err = db.Ping()
	chkf(err, FAIL)

	return db
}

// GetSQLITEConn - the connection to hand to corpus queries
func GetSQLITEConn() *sql.DB {
	if SQLITEConn == nil {
		SQLITEConn = OpenSQLITE()
	}
	return SQLITEConn
}

// dbdebug - echo corpus queries when running with "-db"
func dbdebug(query string, args ...any) {
	if Config.DbDebug {
		msg(fmt.Sprintf("%s %v", strings.Join(strings.Fields(query), " "), args), MSGNOTE)
	}
}

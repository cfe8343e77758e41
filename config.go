//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
)

type CurrentConfiguration struct {
	Authenticate  bool
	BlackAndWhite bool
	CorpusDir     string
	DbDebug       bool
	EchoLog       int // 0: "none"; 1: "terse"; 2: "verbose"
	Gzip          bool
	HostIP        string
	HostPort      int
	LogLevel      int
	ManualGC      bool
	PGCache       bool
	PGLogin       PostgresLogin
	ProfileCPU    bool
	QuietStart    bool
	SelfTest      bool
	TermMode      bool
	VectorMaxLn   int
	WorkerCount   int
}

// BuildDefaultConfig - set reasonable values for everything; these can be clobbered by the config file and flags
func BuildDefaultConfig() CurrentConfiguration {
	var c CurrentConfiguration
	c.Authenticate = false
	c.BlackAndWhite = BLACKANDWHITE
	c.CorpusDir = ""
	c.DbDebug = false
	c.EchoLog = 0
	c.Gzip = false
	c.HostIP = SERVEDFROMHOST
	c.HostPort = SERVEDFROMPORT
	c.LogLevel = MSGCRIT
	c.ManualGC = true
	c.PGCache = false
	c.ProfileCPU = false
	c.QuietStart = false
	c.SelfTest = false
	c.TermMode = false
	c.VectorMaxLn = VECTORMAXLINES
	c.WorkerCount = runtime.NumCPU()
	return c
}

// configatlaunch - read the configuration values from JSON and/or command line
func configatlaunch() {
	const (
		FAIL1 = "Could not open '%s'"
		FAIL2 = "FAILED to load database credentials from '%s' but '-pc' was requested"
		FAIL3 = "At a minimum make sure that a '%s' file exists and that it has the following format:"
	)

	Config = BuildDefaultConfig()

	cf := fmt.Sprintf("%s/%s", CONFIGLOCATION, CONFIGBASIC)

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(CONFIGALTAPTH, uh)
	acf := fmt.Sprintf("%s%s", h, CONFIGBASIC)

	args := os.Args[1:len(os.Args)]

	for i, a := range args {
		switch a {
		case "-au":
			Config.Authenticate = true
		case "-bw":
			Config.BlackAndWhite = true
		case "-cd":
			Config.CorpusDir = args[i+1]
		case "-cf":
			cf = args[i+1]
		case "-db":
			Config.DbDebug = true
		case "-el":
			ll, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.EchoLog = ll
		case "-gz":
			Config.Gzip = true
		case "-h":
			printversion()
			ht := coloroutput(HELPTEXT)
			fmt.Println(fmt.Sprintf(ht, acf, SERVEDFROMHOST, SERVEDFROMPORT))
			os.Exit(1)
		case "-pc":
			Config.PGCache = true
		case "-pf":
			Config.ProfileCPU = true
		case "-q":
			Config.QuietStart = true
		case "-sa":
			Config.HostIP = args[i+1]
		case "-sp":
			p, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.HostPort = p
		case "-st":
			Config.SelfTest = true
		case "-tt":
			Config.TermMode = true
		case "-v":
			fmt.Println(VERSION)
			os.Exit(1)
		case "-vv":
			ll, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.LogLevel = ll
		case "-wc":
			wc, err := strconv.Atoi(args[i+1])
			chke(err)
			Config.WorkerCount = wc
		default:
			// do nothing
		}
	}

	messenger.Cfg = Config

	if Config.PGCache {
		type ConfigFile struct {
			PostgreSQLPassword string
		}

		grab := func(n string) (ConfigFile, error) {
			fh, e := os.Open(n)
			if e != nil {
				msg(fmt.Sprintf(FAIL1, n), MSGTMI)
				return ConfigFile{}, e
			}
			defer func(fh *os.File) {
				_ = fh.Close()
			}(fh)
			decoder := json.NewDecoder(fh)
			conf := ConfigFile{}
			err := decoder.Decode(&conf)
			return conf, err
		}

		conf, erra := grab(cf)
		if erra != nil {
			var errb error
			conf, errb = grab(acf)
			if errb != nil {
				msg(fmt.Sprintf(FAIL2, acf), MSGCRIT)
				msg(fmt.Sprintf(FAIL3, CONFIGBASIC), MSGCRIT)
				fmt.Printf(MINCONFIG)
				os.Exit(0)
			}
		}

		Config.PGLogin = PostgresLogin{
			Host:   DEFAULTPSQLHOST,
			Port:   DEFAULTPSQLPORT,
			User:   DEFAULTPSQLUSER,
			DBName: DEFAULTPSQLDB,
			Pass:   conf.PostgreSQLPassword,
		}
	}

	messenger.Cfg = Config
}

func printversion() {
	const (
		SN = " [C4%sC0]"
		GC = " [C6gitC0: C6%sC0]"
		VR = "C5S1%sC0 (C2v%sC0)"
	)
	sn := fmt.Sprintf(SN, SHORTNAME)
	gc := ""
	if GitCommit != "" {
		gc = fmt.Sprintf(GC, GitCommit)
	}
	versioninfo := fmt.Sprintf(VR, MYNAME, VERSION) + sn + gc
	versioninfo = messenger.ColStyle(versioninfo)
	fmt.Println(versioninfo)
}

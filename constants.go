//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

const (
	MYNAME    = "Hypatia Golang Server"
	SHORTNAME = "HyGS"
	VERSION   = "0.3.1"

	SERVEDFROMHOST = "127.0.0.1"
	SERVEDFROMPORT = 8000

	CONFIGLOCATION  = "."
	CONFIGALTAPTH   = "%s/.config/HypatiaGoServer/"
	CONFIGBASIC     = "hys-conf.json"
	CONFIGW2V       = "hys-conf-w2v.json"
	CONFIGGLOVE     = "hys-conf-glove.json"
	CONFIGLEXVEC    = "hys-conf-lexvec.json"
	CONFIGTOPIC     = "hys-conf-topicmodel.json"
	DEFAULTCORPUSDB = "file::memory:?cache=shared"

	// the sample corpora installed at launch when no corpus directory is given

	CORPUSLITERARY = "literary"
	CORPUSNEWS     = "newsgroups"

	// word-embedding exploration

	VECTORNEIGHBORS    = 16
	VECTORNEIGHBORSMAX = 40
	VECTORNEIGHBORSMIN = 3
	VECTORTABLENAMENN  = "semantic_vectors_nn"
	VECTORMAXLINES     = 1000000

	// topic modeling

	TOPICSDEFAULT    = 5
	TOPICSMIN        = 2
	TOPICSMAX        = 30
	TOPWORDSPERTOPIC = 8
	TOPSENTPERTOPIC  = 1
	LDAITERATIONS    = 60
	LDAXFORMPASSES   = 100
	NMFITERATIONS    = 200
	NMFTOLERANCE     = 1e-5

	// t-SNE of the document-topic mixtures

	TSNEPERPLEXITY = 12
	TSNELEARNINGRT = 100
	TSNEMAXITER    = 400

	// pls-vs-ols regression exercise

	PLSCOMPONENTS  = 4
	PLSMAXSWEEP    = 12
	SYNTHROWS      = 240
	SYNTHCOLS      = 40
	SYNTHRANK      = 4
	SYNTHNOISE     = 0.25
	SYNTHSEED      = 42
	TESTFRACTION   = 0.25

	// echo

	MAXECHOREQPERSECONDPERIP = 60
	TIMEOUTRD                = 15
	TIMEOUTWR                = 120
	MAXFOUROHFOUR            = 25
	MAXFIVEHUNDRED           = 5
	BLACKANDWHITE            = false
	COOKIENAME               = "ID"
	WSPOLLINGPAUSE           = 200
	JOBEXPIRYMIN             = 10

	JSONINDENT = "  "
	WRITEPERMS = 0644

	TERMINALTEXTWIDTH = 108

	MINCONFIG = `
{"PostgreSQLPassword": ""}
`

	HELPTEXT = `command line options:
   -au     require authentication (policing of repeat 404/500 offenders)
   -bw     disable color output in the terminal
   -cd <d> load corpora from directory <d> instead of the built-in samples
   -cf <f> use <f> as the configuration file
   -el <n> set echo server log level (0-3) [default: 0]
   -gz     enable gzip compression of the server's output
   -h      print this help information
   -pc     cache vector models in PostgreSQL (requires "%s" with login info)
   -pf     write runtime profiling data
   -q      quiet startup: suppress copyright notice
   -sa <a> server IP address [default: %s]
   -sp <n> server port [default: %d]
   -st     run the self-test exercises at startup
   -tt     terminal mode: run all exercises, print the results, and exit
   -v      print version and exit
   -vv <n> log level (-1 is silent; 5 is very noisy) [default: 0]
   -wc <n> number of workers [default: cpu count]`
)

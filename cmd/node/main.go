// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package main

import (
	"database/sql"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/publicmoney/parity-bitcoin/chain"
	"github.com/publicmoney/parity-bitcoin/consensus"
	"github.com/publicmoney/parity-bitcoin/datafile"
	"github.com/publicmoney/parity-bitcoin/storage"
)

func init() {
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func main() {
	app := &cli.App{
		Name:  "node",
		Usage: "run a block acceptance node",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "datadir",
				Value: "./data",
				Usage: "directory holding the block data file",
			},
			&cli.StringFlag{
				Name:  "network",
				Value: "mainnet",
				Usage: "mainnet or testnet3",
			},
			&cli.StringFlag{
				Name:  "mysql-dsn",
				Usage: "DSN for the MySQL-backed header/output store",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "panic, fatal, error, warn, info, debug, or trace",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	level, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if err := os.MkdirAll(c.String("datadir"), 0o755); err != nil {
		return err
	}

	backing, err := datafile.OpenFilePagedFile(c.String("datadir") + "/blocks.dat")
	if err != nil {
		return err
	}
	df, err := datafile.Open(backing)
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", c.String("mysql-dsn"))
	if err != nil {
		return err
	}
	defer db.Close()
	sqlStore := storage.NewSQLProvider(db)

	params, genesis := networkConfig(c.String("network"))
	deploy := consensus.DeploymentState{CSVActive: true, SegwitActive: true}

	node := chain.New(genesis, sqlStore, sqlStore, df, params, deploy)
	logrus.Infof("started at height %d, tip %s", node.Height(), node.HeadHash())

	select {}
}

// networkConfig resolves a --network flag value into its consensus
// parameters and genesis block.
func networkConfig(network string) (*consensus.ConsensusParams, *consensus.Block) {
	if network == "testnet3" {
		return consensus.TestNetParams(), chain.TestNet3Genesis()
	}
	return consensus.MainNetParams(), chain.MainNetGenesis()
}

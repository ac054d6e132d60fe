package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/s5-go/s5/client"
	"github.com/s5-go/s5/crypto"
	"github.com/s5-go/s5/identity"
	"github.com/s5-go/s5/network"
	"github.com/s5-go/s5/seedphrase"
)

// identityPath is where this CLI persists the marshaled identity between
// invocations; localstate.Store is an in-process cache and takes no
// position on disk layout, so the embedding application - this CLI - owns
// that detail itself.
func identityPath(c *cli.Context) string {
	if p := c.String("identity-file"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".s5-identity"
	}
	return filepath.Join(home, ".s5-identity")
}

func loadIdentity(suite crypto.Suite, path string) (*identity.Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return identity.Unmarshal(suite, data)
}

func saveIdentity(path string, id *identity.Identity) error {
	return os.WriteFile(path, id.Marshal(), 0600)
}

func buildClient(c *cli.Context) (*client.Client, error) {
	suite := crypto.New()
	id, err := loadIdentity(suite, identityPath(c))
	if err != nil {
		return nil, fmt.Errorf("no identity found, run 'identity new' first: %w", err)
	}
	net := network.NewMemory(suite)
	return client.New(suite, id, net)
}

func main() {
	app := &cli.App{
		Name:  "s5",
		Usage: "content-addressed filesystem client",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "identity-file",
				Usage: "path to the persisted identity (defaults to ~/.s5-identity)",
			},
		}, NewKlogFlagSet()...),
		Commands: []*cli.Command{
			identityCommand(),
			putCommand(),
			getCommand(),
			lsCommand(),
			rmCommand(),
			metaCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		klog.Errorf("s5: %v", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func identityCommand() *cli.Command {
	return &cli.Command{
		Name:  "identity",
		Usage: "manage the local identity",
		Subcommands: []*cli.Command{
			{
				Name:  "new",
				Usage: "generate a fresh identity and its seed phrase",
				Action: func(c *cli.Context) error {
					suite := crypto.New()
					raw, err := suite.Random(seedphrase.EntropySize)
					if err != nil {
						return err
					}
					var entropy [seedphrase.EntropySize]byte
					copy(entropy[:], raw)
					id, err := identity.FromEntropy(suite, entropy)
					if err != nil {
						return err
					}
					if err := saveIdentity(identityPath(c), id); err != nil {
						return err
					}
					phrase, err := seedphrase.FromEntropy(suite, entropy)
					if err != nil {
						return err
					}
					fmt.Println("seed phrase:", phrase)
					fmt.Println("saved identity to", identityPath(c))
					return nil
				},
			},
			{
				Name:      "from-phrase",
				Usage:     "restore an identity from a seed phrase",
				ArgsUsage: "<seed phrase>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return fmt.Errorf("expected a seed phrase argument")
					}
					suite := crypto.New()
					id, err := identity.FromSeedPhrase(suite, c.Args().Get(0))
					if err != nil {
						return err
					}
					if err := saveIdentity(identityPath(c), id); err != nil {
						return err
					}
					fmt.Println("saved identity to", identityPath(c))
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "print the local identity's raw entropy (hex)",
				Action: func(c *cli.Context) error {
					suite := crypto.New()
					id, err := loadIdentity(suite, identityPath(c))
					if err != nil {
						return err
					}
					fmt.Println(hex.EncodeToString(id.Entropy[:]))
					return nil
				},
			},
		},
	}
}

func putCommand() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "write a value to a path",
		ArgsUsage: "<path> <value>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-encrypt", Usage: "store the file's bytes unencrypted"},
			&cli.StringFlag{Name: "media-type", Usage: "media type to record alongside the file"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("expected <path> <value>")
			}
			cl, err := buildClient(c)
			if err != nil {
				return err
			}
			var opts []client.PutOption
			if c.Bool("no-encrypt") {
				opts = append(opts, client.WithoutEncryption())
			}
			if mt := c.String("media-type"); mt != "" {
				opts = append(opts, client.WithMediaType(mt))
			}
			return cl.Put(c.Context, c.Args().Get(0), c.Args().Get(1), opts...)
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "read a value at a path",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("expected <path>")
			}
			cl, err := buildClient(c)
			if err != nil {
				return err
			}
			v, ok, err := cl.Get(c.Context, c.Args().Get(0))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("not found")
			}
			fmt.Println(v)
			return nil
		},
	}
}

func lsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list a directory's entries",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 100},
			&cli.StringFlag{Name: "cursor"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("expected <path>")
			}
			cl, err := buildClient(c)
			if err != nil {
				return err
			}
			page, err := cl.List(c.Context, c.Args().Get(0), client.ListOptions{
				Limit:  c.Int("limit"),
				Cursor: c.String("cursor"),
			})
			if err != nil {
				return err
			}
			for _, e := range page.Entries {
				fmt.Printf("%s\t%s\n", e.Type, e.Name)
			}
			if page.NextCursor != "" {
				fmt.Println("next cursor:", page.NextCursor)
			}
			return nil
		},
	}
}

func rmCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "delete a path",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("expected <path>")
			}
			cl, err := buildClient(c)
			if err != nil {
				return err
			}
			deleted, err := cl.Delete(c.Context, c.Args().Get(0))
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("not found")
			}
			return nil
		},
	}
}

func metaCommand() *cli.Command {
	return &cli.Command{
		Name:      "meta",
		Usage:     "show a path's metadata",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("expected <path>")
			}
			cl, err := buildClient(c)
			if err != nil {
				return err
			}
			md, err := cl.GetMetadata(c.Context, c.Args().Get(0))
			if err != nil {
				return err
			}
			if md == nil {
				return fmt.Errorf("not found")
			}
			switch md.Type {
			case client.EntryTypeFile:
				fmt.Printf("file %s size=%d mediaType=%q timestamp=%d\n", md.Name, md.Size, md.MediaType, md.Timestamp)
			case client.EntryTypeDirectory:
				fmt.Printf("directory %s files=%d directories=%d\n", md.Name, md.FileCount, md.DirectoryCount)
			}
			return nil
		},
	}
}

package cli

import (
	"crypto/md5"
	"crypto/sha1"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lzww0608/uuidgen"
)

type hashVersion struct {
	newHash func() hash.Hash
	version uuidgen.Version
}

var (
	md5Names  = hashVersion{newHash: md5.New, version: uuidgen.VersionNameBasedMD5}
	sha1Names = hashVersion{newHash: sha1.New, version: uuidgen.VersionNameBasedSHA1}
)

var namespaces = map[string]uuidgen.UUID{
	"dns":  uuidgen.NamespaceDNS,
	"url":  uuidgen.NamespaceURL,
	"oid":  uuidgen.NamespaceOID,
	"x500": uuidgen.NamespaceX500,
}

func render(id uuidgen.UUID, compact bool) string {
	if compact {
		return id.EncodeToHex()
	}
	return id.String()
}

func newV1Command(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "v1",
		Short: "Generate time-based UUIDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := count(cmd)
			if err != nil {
				return err
			}
			compact, _ := cmd.Flags().GetBool("compact")

			ctx := cmd.Context()
			nodes, closeNodes, err := nodeProvider(ctx, a.cfg.Node, a.logger)
			if err != nil {
				return err
			}
			defer closeNodes()

			gen, err := uuidgen.NewTimeGenerator(nodes)
			if err != nil {
				return err
			}
			a.logger.Debug("generating time-based uuids",
				"count", n, "backend", a.cfg.Node.Backend, "node", uuidgen.FormatNodeID(nodes.NodeID()))

			out := cmd.OutOrStdout()
			for i := 0; i < n; i++ {
				id, err := nextV1(gen)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, render(id, compact))
			}
			return nil
		},
	}
	cmd.Flags().IntP("count", "n", 1, "Number of UUIDs to generate")
	cmd.Flags().Bool("compact", false, "Print 32 hex digits without dashes")
	return cmd
}

// nextV1 waits for the next millisecond when the current one is used up.
func nextV1(gen *uuidgen.TimeGenerator) (uuidgen.UUID, error) {
	for {
		id, err := gen.New()
		if !errors.Is(err, uuidgen.ErrTooManyGenerated) {
			return id, err
		}
		now := time.Now()
		time.Sleep(now.Truncate(time.Millisecond).Add(time.Millisecond).Sub(now))
	}
}

func newV4Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "v4",
		Short: "Generate random UUIDs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := count(cmd)
			if err != nil {
				return err
			}
			compact, _ := cmd.Flags().GetBool("compact")

			out := cmd.OutOrStdout()
			for i := 0; i < n; i++ {
				id, err := uuidgen.NewRandom()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, render(id, compact))
			}
			return nil
		},
	}
	cmd.Flags().IntP("count", "n", 1, "Number of UUIDs to generate")
	cmd.Flags().Bool("compact", false, "Print 32 hex digits without dashes")
	return cmd
}

func newHashCommand(use, short string, hv hashVersion) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			ns, _ := cmd.Flags().GetString("namespace")
			random, _ := cmd.Flags().GetBool("random-namespace")
			compact, _ := cmd.Flags().GetBool("compact")
			out := cmd.OutOrStdout()

			if random {
				id, space, err := uuidgen.NewHashRandomNamespace(hv.newHash(), []byte(name), hv.version)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, render(id, compact))
				fmt.Fprintln(cmd.ErrOrStderr(), "namespace:", space)
				return nil
			}

			space, err := resolveNamespace(ns)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, render(uuidgen.NewHash(hv.newHash(), space, []byte(name), hv.version), compact))
			return nil
		},
	}
	cmd.Flags().String("namespace", "dns", "Namespace: dns|url|oid|x500 or a UUID")
	cmd.Flags().String("name", "", "Name to hash")
	cmd.Flags().Bool("random-namespace", false, "Hash under a fresh random namespace and print it to stderr")
	cmd.Flags().Bool("compact", false, "Print 32 hex digits without dashes")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func resolveNamespace(s string) (uuidgen.UUID, error) {
	if ns, ok := namespaces[strings.ToLower(s)]; ok {
		return ns, nil
	}
	id, err := uuidgen.Parse(s)
	if err != nil {
		return uuidgen.Nil, fmt.Errorf("invalid --namespace %q; use dns|url|oid|x500 or a UUID", s)
	}
	return id, nil
}

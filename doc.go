// Package uuidgen generates and decodes RFC 4122 Universally Unique
// Identifiers: time-based (v1), name-based (v3 MD5, v5 SHA-1) and random
// (v4), together with parsing, canonical rendering and field inspection.
//
// Basic Usage:
//
//	// Random UUID
//	id, err := uuidgen.NewRandom()
//
//	// Name-based UUIDs are deterministic
//	id := uuidgen.NewV5(uuidgen.NamespaceDNS, []byte("example.com"))
//
//	// Parse accepts dashed or compact hex, with or without a 0x prefix
//	id, err := uuidgen.Parse("0xAE968D8AADF011EEBA05325096B39F47")
//	fmt.Println(id)               // ae968d8a-adf0-11ee-ba05-325096b39f47
//	fmt.Println(id.EncodeToHex()) // ae968d8aadf011eeba05325096b39f47
//
// Time-based Generation:
//
//	gen, err := uuidgen.NewTimeGenerator(uuidgen.StaticNodeIDProvider(0x325096b39f47))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	id, err := gen.New()
//	if errors.Is(err, uuidgen.ErrTooManyGenerated) {
//	    // 10000 UUIDs were issued this millisecond; retry on the next one
//	}
//
// Inspection:
//
//	in := id.Inspect()
//	fmt.Println(in.Version, in.Variant, in.ClockSeq, in.Node)
//	fmt.Println(in.UnixTime().Time())
//
// Thread Safety:
//
// NewRandom, NewV3, NewV5 and all UUID methods are safe for concurrent use.
// A TimeGenerator is owned by one goroutine at a time; wrap it in a
// SyncTimeGenerator to share it. NewV1 uses a process-wide SyncTimeGenerator
// that can be injected once with SetDefault.
package uuidgen

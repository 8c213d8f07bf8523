/*
Package random provides random values from a pluggable source.

A Generator wraps a single Source, which only has to return fractions in
[0,1), and derives everything else from it: hex strings, identifiers,
secrets, random choices, raw bytes and UUIDs.

Strong sources read from the fortuna CSPRNG of the rng package or from the
operating system. If neither is available, Select falls back to Alea, a fast
deterministic generator seeded from weak ambient entropy. Alea is also used
directly for reproducible streams via CreateWithSeeds.

Alea is NOT cryptographically secure. Check Generator.Secure before using a
generator for keys, tokens or passwords.
*/
package random

// Command pictura is the CLI for the local image library: scanning
// directories, classifying images through the captioning service or the
// local heuristic, and querying stored metadata.
package main

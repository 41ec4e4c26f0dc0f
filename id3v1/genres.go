package id3v1

// genres is the classic 0–79 ID3v1 genre table (defined by the Nullsoft
// Winamp convention and widely extended afterward); index 255 conventionally
// means "unset" and is handled separately from this table.
var genres = [...]string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient",
	"Trip-Hop", "Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical",
	"Instrumental", "Acid", "House", "Game", "Sound Clip", "Gospel",
	"Noise", "AlternRock", "Bass", "Soul", "Punk", "Space", "Meditative",
	"Instrumental Pop", "Instrumental Rock", "Ethnic", "Gothic",
	"Darkwave", "Techno-Industrial", "Electronic", "Pop-Folk",
	"Eurodance", "Dream", "Southern Rock", "Comedy", "Cult", "Gangsta",
	"Top 40", "Christian Rap", "Pop/Funk", "Jungle", "Native American",
	"Cabaret", "New Wave", "Psychedelic", "Rave", "Showtunes", "Trailer",
	"Lo-Fi", "Tribal", "Acid Punk", "Acid Jazz", "Polka", "Retro",
	"Musical", "Rock & Roll", "Hard Rock",
}

// genreIndex returns the table index for name, or 255 ("unset") if name
// is not one of the classic genres.
func genreIndex(name string) byte {
	for i, g := range genres {
		if g == name {
			return byte(i) //nolint:gosec // i < len(genres) (80)
		}
	}

	return 255
}

// genreName returns the genre name for index, or "" for 255/unknown.
func genreName(index byte) string {
	if int(index) < len(genres) {
		return genres[index]
	}

	return ""
}

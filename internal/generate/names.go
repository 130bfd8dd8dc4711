package generate

import "math/rand"

var indianFirstNames = []string{
	"Rohan", "Virat", "Shubman", "Rishabh", "Hardik", "Jasprit", "Ravindra",
	"Mohammed", "Yuzvendra", "Suryakumar", "Axar", "Kuldeep", "Shreyas",
	"Ishan", "Prithvi", "Sanju", "Deepak", "Washington", "Arshdeep", "Avesh",
}

var indianLastNames = []string{
	"Sharma", "Kohli", "Gill", "Pant", "Pandya", "Bumrah", "Jadeja", "Shami",
	"Chahal", "Yadav", "Patel", "Iyer", "Kishan", "Samson", "Chahar",
	"Sundar", "Singh", "Rana", "Thakur", "Kumar",
}

var overseasFirstNames = []string{
	"Steve", "David", "Pat", "Mitchell", "Glenn", "Kane", "Trent", "Ben",
	"Jos", "Jofra", "Rassie", "Quinton", "Kagiso", "Babar", "Shaheen",
	"Shakib", "Mustafizur", "Jason", "Nicholas", "Andre",
}

var overseasLastNames = []string{
	"Smith", "Warner", "Cummins", "Starc", "Maxwell", "Williamson", "Boult",
	"Stokes", "Buttler", "Archer", "Van der Dussen", "De Kock", "Rabada",
	"Azam", "Afridi", "Al Hasan", "Rahman", "Holder", "Pooran", "Russell",
}

var overseasCountries = []string{
	"Australia", "England", "South Africa", "New Zealand", "West Indies",
	"Pakistan", "Bangladesh", "Afghanistan", "Sri Lanka",
}

// randomName returns a name and nationality consistent with the overseas flag.
func randomName(rng *rand.Rand, overseas bool) (name, nationality string) {
	if !overseas {
		first := indianFirstNames[rng.Intn(len(indianFirstNames))]
		last := indianLastNames[rng.Intn(len(indianLastNames))]
		return first + " " + last, "India"
	}
	first := overseasFirstNames[rng.Intn(len(overseasFirstNames))]
	last := overseasLastNames[rng.Intn(len(overseasLastNames))]
	country := overseasCountries[rng.Intn(len(overseasCountries))]
	return first + " " + last, country
}

// Package lookup holds the static mapping between country names and parkrun
// site domain suffixes.
//
// parkrun runs one site per country, distinguished only by the domain
// extension after "parkrun" in the hostname (parkrun.org.uk, parkrun.com.au,
// parkrun.pl, ...). The table is maintained by hand; an unknown suffix means
// a new site variant appeared and must be added here, so lookups fail loudly
// rather than guessing.
package lookup

package migrations

import "github.com/epc-retail/exclusivity-backend/pkg/db"

var (
	chainCodes      = []string{"VCH", "SMH", "SMO"}
	storeClassCodes = []string{"ASEH", "BSH", "CSM", "DSS", "ESES"}

	// Ad-hoc cells added for alternate chain codes that never got lookup rows.
	altChainCells = []string{"sm", "rds", "wds"}
)

// matrixCells lists the chain x store-class combination columns in a stable
// order, chain-major. Both matrix tables use the identical layout.
func matrixCells() []string {
	cells := make([]string, 0, len(chainCodes)*len(storeClassCodes))
	for _, chain := range chainCodes {
		for _, class := range storeClassCodes {
			cells = append(cells, db.MatrixCell(chain, class))
		}
	}
	return cells
}

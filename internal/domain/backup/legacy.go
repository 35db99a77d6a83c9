package backup

import "time"

// migrateLegacyLogs pliega los weightLogs/healthLogs del formato viejo
// en dailyRecords: un registro por (mascota, día), el peso rellena solo
// si el día no tenía, los tags se unen como conjunto. Los registros
// sintetizados reciben ids por encima del máximo presente para no
// chocar con los originales, que se preservan textuales.
func (s *Snapshot) migrateLegacyLogs() {
	if len(s.WeightLogs) == 0 && len(s.HealthLogs) == 0 {
		return
	}

	type key struct {
		petID int64
		date  string
	}

	index := make(map[key]int, len(s.DailyRecords))
	var maxID int64
	for i, rec := range s.DailyRecords {
		index[key{rec.PetID, rec.RecordDate}] = i
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}

	ensure := func(petID int64, recordedAt string) *DailyRecordEntry {
		date := recordedAt
		if len(date) > 10 {
			date = date[:10]
		}

		k := key{petID, date}
		if i, ok := index[k]; ok {
			return &s.DailyRecords[i]
		}

		created, err := time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			created = s.CreatedAt
		}

		maxID++
		s.DailyRecords = append(s.DailyRecords, DailyRecordEntry{
			ID:           maxID,
			PetID:        petID,
			RecordDate:   date,
			Observations: []string{},
			CreatedAt:    created,
			UpdatedAt:    created,
		})
		index[k] = len(s.DailyRecords) - 1
		return &s.DailyRecords[len(s.DailyRecords)-1]
	}

	for _, wl := range s.WeightLogs {
		rec := ensure(wl.PetID, wl.RecordedAt)
		if rec.Weight == nil {
			w := wl.Weight
			rec.Weight = &w
		}
	}

	for _, hl := range s.HealthLogs {
		rec := ensure(hl.PetID, hl.RecordedAt)
		rec.Observations = unionTags(rec.Observations, hl.Tags)
		if rec.Notes == nil && hl.Notes != nil {
			n := *hl.Notes
			rec.Notes = &n
		}
	}

	s.WeightLogs, s.HealthLogs = nil, nil
}

func unionTags(existing, incoming []string) []string {
	out := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	for _, list := range [][]string{existing, incoming} {
		for _, tag := range list {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}

	return out
}

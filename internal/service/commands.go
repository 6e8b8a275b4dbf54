package service

import (
	"context"
	"time"

	"tally/internal/api"
	"tally/internal/errkit"
	"tally/internal/ledger"
	"tally/internal/logging"
	"tally/internal/store"
)

// Add stores a new entry in the period and returns its assigned id.
func (s *Service) Add(ctx context.Context, period string, req api.AddRequest) (int64, error) {
	table, err := ledger.ParseTable(req.Table)
	if err != nil {
		return 0, err
	}
	st, period, err := s.open(period)
	if err != nil {
		return 0, err
	}

	var id int64
	switch table {
	case ledger.TableRecurrent:
		entry, buildErr := s.recurrentFromRequest(req)
		if buildErr != nil {
			return 0, buildErr
		}
		id, err = st.AddRecurrent(ctx, entry)
	default:
		entry, buildErr := s.standardFromRequest(req)
		if buildErr != nil {
			return 0, buildErr
		}
		id, err = st.AddStandard(ctx, entry)
	}
	if err != nil {
		return 0, err
	}

	s.logger.Info("added element",
		logging.String(logging.FieldPeriod, period),
		logging.String(logging.FieldTable, string(table)),
		logging.Int64(logging.FieldEntryID, id))
	return id, nil
}

// Get loads a single element.
func (s *Service) Get(ctx context.Context, period, tableName string, id int64) (api.Element, error) {
	table, err := ledger.ParseTable(tableName)
	if err != nil {
		return api.Element{}, err
	}
	st, _, err := s.open(period)
	if err != nil {
		return api.Element{}, err
	}

	if table == ledger.TableRecurrent {
		entry, err := st.GetRecurrent(ctx, id)
		if err != nil {
			return api.Element{}, err
		}
		return api.FromRecurrentEntry(entry), nil
	}
	entry, err := st.GetStandard(ctx, id)
	if err != nil {
		return api.Element{}, err
	}
	return api.FromEntry(entry), nil
}

// Update applies the non-nil fields of the request to an existing element.
func (s *Service) Update(ctx context.Context, period, tableName string, id int64, req api.UpdateRequest) error {
	if req.Empty() {
		return errkit.Wrap(errkit.ErrValidation, "service", "update", "no fields to update", nil)
	}
	table, err := ledger.ParseTable(tableName)
	if err != nil {
		return err
	}
	st, period, err := s.open(period)
	if err != nil {
		return err
	}

	if table == ledger.TableRecurrent {
		err = s.updateRecurrent(ctx, st, id, req)
	} else {
		err = s.updateStandard(ctx, st, id, req)
	}
	if err != nil {
		return err
	}

	s.logger.Info("updated element",
		logging.String(logging.FieldPeriod, period),
		logging.String(logging.FieldTable, string(table)),
		logging.Int64(logging.FieldEntryID, id))
	return nil
}

func (s *Service) updateStandard(ctx context.Context, st *store.Store, id int64, req api.UpdateRequest) error {
	if req.Frequency != nil || req.Start != nil || req.End != nil {
		return errkit.Wrap(errkit.ErrValidation, "service", "update", "recurrence fields require the recurrent table", nil)
	}
	entry, err := st.GetStandard(ctx, id)
	if err != nil {
		return err
	}
	if req.Name != nil {
		entry.Name = ledger.NormalizeName(*req.Name)
	}
	if req.Value != nil {
		entry.Value = *req.Value
	}
	if req.Date != nil {
		canonical, err := ledger.ParseDayDate(*req.Date, "")
		if err != nil {
			return err
		}
		entry.Date = canonical
	}
	if req.Category != nil {
		entry.Category = s.category(*req.Category)
	}
	return st.UpdateStandard(ctx, entry)
}

func (s *Service) updateRecurrent(ctx context.Context, st *store.Store, id int64, req api.UpdateRequest) error {
	if req.Date != nil {
		return errkit.Wrap(errkit.ErrValidation, "service", "update", "the date field requires the standard table", nil)
	}
	entry, err := st.GetRecurrent(ctx, id)
	if err != nil {
		return err
	}
	if req.Name != nil {
		entry.Name = ledger.NormalizeName(*req.Name)
	}
	if req.Value != nil {
		entry.Value = *req.Value
	}
	if req.Frequency != nil {
		frequency, err := ledger.ParseFrequency(*req.Frequency)
		if err != nil {
			return err
		}
		entry.Frequency = frequency
	}
	if req.Start != nil {
		canonical, err := ledger.ParseDayDate(*req.Start, "")
		if err != nil {
			return err
		}
		entry.Start = canonical
	}
	if req.End != nil {
		canonical, err := ledger.ParseDayDate(*req.End, "")
		if err != nil {
			return err
		}
		entry.End = canonical
	}
	if req.Category != nil {
		entry.Category = s.category(*req.Category)
	}
	return st.UpdateRecurrent(ctx, entry)
}

// Remove deletes an element.
func (s *Service) Remove(ctx context.Context, period, tableName string, id int64) error {
	table, err := ledger.ParseTable(tableName)
	if err != nil {
		return err
	}
	st, period, err := s.open(period)
	if err != nil {
		return err
	}

	if table == ledger.TableRecurrent {
		err = st.RemoveRecurrent(ctx, id)
	} else {
		err = st.RemoveStandard(ctx, id)
	}
	if err != nil {
		return err
	}

	s.logger.Info("removed element",
		logging.String(logging.FieldPeriod, period),
		logging.String(logging.FieldTable, string(table)),
		logging.Int64(logging.FieldEntryID, id))
	return nil
}

// Copy duplicates an element from one period into another and returns the id
// assigned by the destination table.
func (s *Service) Copy(ctx context.Context, req api.CopyRequest) (int64, error) {
	table, err := ledger.ParseTable(req.Table)
	if err != nil {
		return 0, err
	}
	source, sourcePeriod, err := s.open(req.SourcePeriod)
	if err != nil {
		return 0, err
	}
	destination, destinationPeriod, err := s.open(req.DestinationPeriod)
	if err != nil {
		return 0, err
	}

	var id int64
	if table == ledger.TableRecurrent {
		entry, getErr := source.GetRecurrent(ctx, req.EntryID)
		if getErr != nil {
			return 0, getErr
		}
		entry.ID = 0
		id, err = destination.AddRecurrent(ctx, entry)
	} else {
		entry, getErr := source.GetStandard(ctx, req.EntryID)
		if getErr != nil {
			return 0, getErr
		}
		entry.ID = 0
		id, err = destination.AddStandard(ctx, entry)
	}
	if err != nil {
		return 0, err
	}

	s.logger.Info("copied element",
		logging.String("source_period", sourcePeriod),
		logging.String("destination_period", destinationPeriod),
		logging.String(logging.FieldTable, string(table)),
		logging.Int64(logging.FieldEntryID, id))
	return id, nil
}

// List returns the period's elements, filtered, keyed by table. Recurrent
// templates appear as their expanded occurrences under the template id.
func (s *Service) List(ctx context.Context, period string, rawFilters []string) (api.Elements, error) {
	filters, err := ledger.ParseFilters(rawFilters)
	if err != nil {
		return api.Elements{}, err
	}
	st, period, err := s.open(period)
	if err != nil {
		return api.Elements{}, err
	}

	elements := api.Elements{
		Standard:  map[int64]api.Element{},
		Recurrent: map[int64][]api.Element{},
	}

	standard, err := st.ListStandard(ctx)
	if err != nil {
		return api.Elements{}, err
	}
	for _, entry := range standard {
		if !filters.Match(entry) {
			continue
		}
		elements.Standard[entry.ID] = api.FromEntry(entry)
	}

	year := ledger.PeriodYear(period, time.Now().Year())
	templates, err := st.ListRecurrent(ctx)
	if err != nil {
		return api.Elements{}, err
	}
	for _, template := range templates {
		var matched []ledger.Entry
		for _, occurrence := range template.Occurrences(year) {
			if filters.Match(occurrence) {
				matched = append(matched, occurrence)
			}
		}
		if len(matched) > 0 {
			elements.Recurrent[template.ID] = api.FromOccurrences(matched)
		}
	}

	return elements, nil
}

func (s *Service) standardFromRequest(req api.AddRequest) (ledger.Entry, error) {
	date := req.Date
	if date == "" {
		date = ledger.DefaultDate(time.Now())
	}
	canonical, err := ledger.ParseDayDate(date, "")
	if err != nil {
		return ledger.Entry{}, err
	}
	return ledger.Entry{
		Name:     ledger.NormalizeName(req.Name),
		Value:    req.Value,
		Date:     canonical,
		Category: s.category(req.Category),
	}, nil
}

func (s *Service) recurrentFromRequest(req api.AddRequest) (ledger.RecurrentEntry, error) {
	frequency, err := ledger.ParseFrequency(req.Frequency)
	if err != nil {
		return ledger.RecurrentEntry{}, err
	}
	start := req.Start
	if start == "" {
		start = ledger.YearStart
	}
	end := req.End
	if end == "" {
		end = ledger.YearEnd
	}
	canonicalStart, err := ledger.ParseDayDate(start, "")
	if err != nil {
		return ledger.RecurrentEntry{}, err
	}
	canonicalEnd, err := ledger.ParseDayDate(end, "")
	if err != nil {
		return ledger.RecurrentEntry{}, err
	}
	return ledger.RecurrentEntry{
		Name:      ledger.NormalizeName(req.Name),
		Value:     req.Value,
		Frequency: frequency,
		Start:     canonicalStart,
		End:       canonicalEnd,
		Category:  s.category(req.Category),
	}, nil
}

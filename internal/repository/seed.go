package repository

import (
    "context"
    "errors"

    "github.com/shopspring/decimal"

    "github.com/lagunartea/club-ledger/internal/model"
)

func glyph(s string) *string { return &s }

// SeedItems is the price list the club started with.  The three fee items
// back the charges derived from reservations.
func SeedItems() []model.Item {
    p := decimal.RequireFromString
    return []model.Item{
        {ID: "luz_fronton", Name: "Court light", Icon: glyph("💡"), Price: p("6.00"), Category: model.CategoryService, SortOrder: 0},
        {ID: "lena", Name: "Firewood", Icon: glyph("🪵"), Price: p("4.00"), Category: model.CategoryService, SortOrder: 1},
        {ID: "descorche", Name: "Corkage", Icon: glyph("🍾"), Price: p("2.00"), Category: model.CategoryService, SortOrder: 2},
        {ID: "comensal_socio", Name: "Member diner", Icon: glyph("👤"), Price: p("1.75"), Category: model.CategoryFee, SortOrder: 0},
        {ID: "comensal_no_socio", Name: "Non-member diner", Icon: glyph("👥"), Price: p("3.00"), Category: model.CategoryFee, SortOrder: 1},
        {ID: "cerveza", Name: "Cerveza", Icon: glyph("🍺"), Price: p("1.80"), Category: model.CategoryDrink, SortOrder: 0},
        {ID: "refresco", Name: "Refresco/Gaseosa", Icon: glyph("🥤"), Price: p("1.80"), Category: model.CategoryDrink, SortOrder: 1},
        {ID: "vino_blanco", Name: "Vino Blanco (Bornos)", Icon: glyph("🥂"), Price: p("7.50"), Category: model.CategoryDrink, SortOrder: 2},
        {ID: "vino_rosado", Name: "Vino Rosado (Sarria)", Icon: glyph("🍷"), Price: p("6.00"), Category: model.CategoryDrink, SortOrder: 3},
        {ID: "vino_tinto", Name: "Vino Tinto (Sarria)", Icon: glyph("🍷"), Price: p("6.00"), Category: model.CategoryDrink, SortOrder: 4},
        {ID: "vino_lopez_haro", Name: "Vino López de Haro", Icon: glyph("🍷"), Price: p("8.00"), Category: model.CategoryDrink, SortOrder: 5},
        {ID: "sidra", Name: "Sidra", Icon: glyph("🍾"), Price: p("5.00"), Category: model.CategoryDrink, SortOrder: 6},
    }
}

// SeedMembers is the initial roster, also served when the member list
// cannot be read.  An empty phone is stored as NULL.
func SeedMembers() []model.Member {
    roster := []struct{ first, last, phone string }{
        {"Ignacio", "Alfonso", "671271927"},
        {"Luis", "Alfonso", "646143396"},
        {"Domingo", "Amatriain", "666444940"},
        {"Rafael", "Araujo", "627953993"},
        {"Joaquin Miguel", "Arbeloa", "656910513"},
        {"Miguel A.", "Arenaza", "635970169"},
        {"Alberto", "Arguedas", ""},
        {"Jesus Javier", "Asiain", "600387412"},
        {"Xabi", "Berrade", "646905200"},
        {"Carlos", "Beunza", "685266274"},
        {"Jorge", "Camats", "609414447"},
        {"Jose Antonio", "Cruceira", "661802707"},
        {"Miguel Angel", "Cruz", "667523500"},
        {"Benedicto", "Cruz", "659776890"},
        {"Javier", "Domeño", "629471633"},
        {"Alfonso", "Echavarren", "636730484"},
        {"Juan", "Echavarren", "659298087"},
        {"Enrique", "Echavarren", "620546198"},
        {"Guillermo", "Echavarren", "678535407"},
        {"Joaquin", "Echeverria", "629778966"},
        {"Miguel", "Echeverria", "645434410"},
        {"Juan Mi.", "Echeverria", "609477661"},
        {"Fco. Javier", "Egaña", "620239024"},
        {"Pedro", "Egaña", "625688036"},
        {"Mikel", "Elizalde", "660268680"},
        {"Jesus Alberto", "Erro", "630066604"},
        {"Juan", "Erroz", "609859013"},
        {"Miki", "Fernandez", "660801211"},
        {"Mitxel", "Fernandez", "616684132"},
        {"Santiago", "Goñi", "656906031"},
        {"Alberto", "Itarte", "616085101"},
        {"Jose Manuel", "Lopez", "649235107"},
        {"Juan Simon", "Mendioroz", "616480019"},
        {"Iñaki", "Moriones", "629853485"},
        {"Carlos", "Murillo", "660321525"},
        {"Jesus", "Nagore", "618937153"},
        {"Joaquin", "Percaz", "637460019"},
        {"Daniel", "Ramos", "618241092"},
        {"Asier", "Purroy", "609380289"},
        {"Antonio", "Rodriguez", "948228928"},
        {"Fco. Javier", "Rodriguez", "669866706"},
        {"Santiago", "Rodriguez", "679502580"},
        {"Fermin", "Saralegui", "606984831"},
        {"Fermin", "Tirapu", "646079980"},
        {"Javier", "Tirapu", "619984954"},
        {"Iñaki", "Tirapu", "692698947"},
        {"Pedro Mª", "Zoco", "659334324"},
        {"Raul", "Zunzarren", "670533166"},
        {"Fernando", "Zaratiegui", "629662229"},
        {"Martin Jesus", "Urdiroz", "629454796"},
        {"Pablo", "Urdiroz", "628173287"},
    }
    out := make([]model.Member, 0, len(roster))
    for i, r := range roster {
        m := model.Member{ID: uint64(i + 1), FirstName: r.first, LastName: r.last}
        if r.phone != "" {
            m.Phone = &r.phone
        }
        out = append(out, m)
    }
    return out
}

// EnsureSeed fills an empty catalog with the seed members and items.
// Existing rows are never touched.
func EnsureSeed(ctx context.Context, s Store) error {
    items, err := s.ListItems(ctx)
    if err != nil {
        return err
    }
    if len(items) == 0 {
        for _, it := range SeedItems() {
            if err := s.CreateItem(ctx, it); err != nil && !errors.Is(err, ErrConflict) {
                return err
            }
        }
    }
    members, err := s.ListMembers(ctx)
    if err != nil {
        return err
    }
    if len(members) == 0 {
        for _, m := range SeedMembers() {
            if err := s.CreateMember(ctx, m); err != nil && !errors.Is(err, ErrConflict) {
                return err
            }
        }
    }
    return nil
}

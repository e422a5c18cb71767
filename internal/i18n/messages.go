package i18n

import "golang.org/x/text/language"

var translations = map[language.Tag]map[string]string{
	language.English: {
		KeyIDReportInfo:     "Your export is being prepared. This may take a few minutes.",
		KeyIDReportError:    "Instance UUIDs could not be exported.",
		KeyInTransitLabel:   "In transit items report",
		KeyInTransitEmpty:   "No items in transit",
		KeyInTransitError:   "In transit items report could not be generated.",
		KeyExportInProgress: "An export of this kind is already running.",
		KeyInstanceCreated:  "Instance %s has been created.",

		ColumnKey("barcode"):                   "Barcode",
		ColumnKey("title"):                     "Title",
		ColumnKey("contributors"):              "Contributors",
		ColumnKey("callNumber"):                "Call number",
		ColumnKey("enumeration"):               "Enumeration",
		ColumnKey("volume"):                    "Volume",
		ColumnKey("yearCaption"):               "Year, caption",
		ColumnKey("itemStatus"):                "Item status",
		ColumnKey("effectiveLocation"):         "Effective location",
		ColumnKey("destinationServicePoint"):   "Destination service point",
		ColumnKey("requestType"):               "Request type",
		ColumnKey("requesterPatronGroup"):      "Requester patron group",
		ColumnKey("requestCreationDate"):       "Request creation date",
		ColumnKey("requestExpirationDate"):     "Request expiration date",
		ColumnKey("requestPickupServicePoint"): "Request pickup service point",
		ColumnKey("lastCheckInDateTime"):       "Check in date time",
		ColumnKey("lastCheckInServicePoint"):   "Check in service point",
	},
	language.German: {
		KeyIDReportInfo:     "Ihr Export wird vorbereitet. Dies kann einige Minuten dauern.",
		KeyIDReportError:    "Instanz-UUIDs konnten nicht exportiert werden.",
		KeyInTransitLabel:   "Bericht über Exemplare im Transit",
		KeyInTransitEmpty:   "Keine Exemplare im Transit",
		KeyInTransitError:   "Der Bericht über Exemplare im Transit konnte nicht erstellt werden.",
		KeyExportInProgress: "Ein Export dieser Art läuft bereits.",
		KeyInstanceCreated:  "Instanz %s wurde angelegt.",

		ColumnKey("barcode"):                   "Barcode",
		ColumnKey("title"):                     "Titel",
		ColumnKey("contributors"):              "Beitragende",
		ColumnKey("callNumber"):                "Signatur",
		ColumnKey("enumeration"):               "Zählung",
		ColumnKey("volume"):                    "Band",
		ColumnKey("yearCaption"):               "Jahr, Bezeichnung",
		ColumnKey("itemStatus"):                "Exemplarstatus",
		ColumnKey("effectiveLocation"):         "Effektiver Standort",
		ColumnKey("destinationServicePoint"):   "Ziel-Servicepunkt",
		ColumnKey("requestType"):               "Bestellart",
		ColumnKey("requesterPatronGroup"):      "Benutzergruppe des Bestellers",
		ColumnKey("requestCreationDate"):       "Erstellungsdatum der Bestellung",
		ColumnKey("requestExpirationDate"):     "Ablaufdatum der Bestellung",
		ColumnKey("requestPickupServicePoint"): "Abhol-Servicepunkt",
		ColumnKey("lastCheckInDateTime"):       "Rückgabezeitpunkt",
		ColumnKey("lastCheckInServicePoint"):   "Rückgabe-Servicepunkt",
	},
	language.Spanish: {
		KeyIDReportInfo:     "Su exportación se está preparando. Esto puede tardar unos minutos.",
		KeyIDReportError:    "No se pudieron exportar los UUID de las instancias.",
		KeyInTransitLabel:   "Informe de ejemplares en tránsito",
		KeyInTransitEmpty:   "No hay ejemplares en tránsito",
		KeyInTransitError:   "No se pudo generar el informe de ejemplares en tránsito.",
		KeyExportInProgress: "Ya hay una exportación de este tipo en curso.",
		KeyInstanceCreated:  "Se ha creado la instancia %s.",

		ColumnKey("barcode"):                   "Código de barras",
		ColumnKey("title"):                     "Título",
		ColumnKey("contributors"):              "Colaboradores",
		ColumnKey("callNumber"):                "Signatura",
		ColumnKey("enumeration"):               "Enumeración",
		ColumnKey("volume"):                    "Volumen",
		ColumnKey("yearCaption"):               "Año, título",
		ColumnKey("itemStatus"):                "Estado del ejemplar",
		ColumnKey("effectiveLocation"):         "Ubicación efectiva",
		ColumnKey("destinationServicePoint"):   "Punto de servicio de destino",
		ColumnKey("requestType"):               "Tipo de solicitud",
		ColumnKey("requesterPatronGroup"):      "Grupo de usuario del solicitante",
		ColumnKey("requestCreationDate"):       "Fecha de creación de la solicitud",
		ColumnKey("requestExpirationDate"):     "Fecha de vencimiento de la solicitud",
		ColumnKey("requestPickupServicePoint"): "Punto de servicio de recogida",
		ColumnKey("lastCheckInDateTime"):       "Fecha y hora de devolución",
		ColumnKey("lastCheckInServicePoint"):   "Punto de servicio de devolución",
	},
}
